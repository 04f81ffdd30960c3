package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type PatientController struct {
	Svc *services.PatientService
}

func NewPatientController(svc *services.PatientService) *PatientController {
	return &PatientController{Svc: svc}
}

func patientIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return 0, false
	}
	return uint(id), true
}

func (pc *PatientController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	patients, err := pc.Svc.ListPatients(uid, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (pc *PatientController) Get(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	patient, err := pc.Svc.GetPatient(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (pc *PatientController) Create(c *gin.Context) {
	uid := c.GetUint("userID")
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.Svc.CreatePatient(uid, &patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (pc *PatientController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := pc.Svc.UpdatePatient(uid, pid, &patient)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *PatientController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	if err := pc.Svc.DeletePatient(uid, pid); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "patient deleted"})
}

func (pc *PatientController) UploadPhoto(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := pc.Svc.SetProfilePicture(uid, pid, input.Image)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
