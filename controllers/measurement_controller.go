package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type MeasurementController struct {
	Svc *services.MeasurementService
}

func NewMeasurementController(svc *services.MeasurementService) *MeasurementController {
	return &MeasurementController{Svc: svc}
}

func (mc *MeasurementController) Create(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	var input services.MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := mc.Svc.Create(uid, pid, input)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (mc *MeasurementController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	rows, err := mc.Svc.List(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": rows})
}

func (mc *MeasurementController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	mid, err := strconv.ParseUint(c.Param("mid"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measurement id"})
		return
	}
	m, err := mc.Svc.Get(uid, pid, uint(mid))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (mc *MeasurementController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	mid, err := strconv.ParseUint(c.Param("mid"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measurement id"})
		return
	}
	if err := mc.Svc.Delete(uid, pid, uint(mid)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "measurement deleted"})
}

func (mc *MeasurementController) Growth(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	out, err := mc.Svc.GrowthAssessment(uid, pid)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
