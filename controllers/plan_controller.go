package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

func parseUintQuery(c *gin.Context, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Query(key), 10, 32)
	return uint(v), err
}

type PlanController struct {
	Svc *services.PlanService
}

func NewPlanController(svc *services.PlanService) *PlanController {
	return &PlanController{Svc: svc}
}

// ResolveGoals previews the energy estimate and nutrient targets without
// generating any meals.
func (pc *PlanController) ResolveGoals(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	patient, tdee, goals, err := pc.Svc.ResolveGoals(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"patient_id": patient.ID,
		"tdee":       tdee,
		"goals":      goals,
	})
}

func (pc *PlanController) GenerateWeekly(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	result, err := pc.Svc.GenerateWeekly(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Edit applies one mutation to a plan the client holds and returns the
// recomputed result. The plan travels with the request; nothing is persisted
// until an explicit save.
func (pc *PlanController) Edit(c *gin.Context) {
	var input struct {
		Plan services.PlanResult `json:"plan" binding:"required"`
		Edit services.PlanEdit   `json:"edit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pc.Svc.ApplyEdit(&input.Plan.Week, input.Edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, input.Plan)
}

func (pc *PlanController) Save(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Name string              `json:"name" binding:"required"`
		Plan services.PlanResult `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := pc.Svc.Save(uid, pid, input.Name, &input.Plan)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": saved.PublicID, "name": saved.Name})
}

func (pc *PlanController) ListSaved(c *gin.Context) {
	uid := c.GetUint("userID")
	var pid uint
	if p, err := parseUintQuery(c, "patient_id"); err == nil {
		pid = p
	}
	plans, err := pc.Svc.ListSaved(uid, pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (pc *PlanController) GetSaved(c *gin.Context) {
	uid := c.GetUint("userID")
	plan, result, err := pc.Svc.GetSaved(uid, c.Param("planID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPlanNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         plan.PublicID,
		"name":       plan.Name,
		"patient_id": plan.PatientID,
		"created_at": plan.CreatedAt,
		"plan":       result,
	})
}

func (pc *PlanController) CloneSaved(c *gin.Context) {
	uid := c.GetUint("userID")
	var input struct {
		Name string `json:"name"`
	}
	_ = c.ShouldBindJSON(&input)
	clone, err := pc.Svc.Clone(uid, c.Param("planID"), input.Name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPlanNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": clone.PublicID, "name": clone.Name})
}

func (pc *PlanController) DeleteSaved(c *gin.Context) {
	uid := c.GetUint("userID")
	if err := pc.Svc.DeleteSaved(uid, c.Param("planID")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPlanNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}
