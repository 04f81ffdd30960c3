package controllers

import (
	"errors"
	"net/http"
	"time"

	"backend/nutrition"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// ProtocolController serves the special-population guidance endpoints. Both
// read the stored patient record; the anemia screen accepts lab overrides so
// a fresh hemoglobin result can be evaluated before the chart is updated.
type ProtocolController struct {
	Patients *services.PatientService
}

func NewProtocolController(patients *services.PatientService) *ProtocolController {
	return &ProtocolController{Patients: patients}
}

func (pc *ProtocolController) PediatricPlan(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	patient, err := pc.Patients.GetPatient(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	plan, err := nutrition.PediatricNutritionPlan(patient.AgeMonthsAt(time.Now()), patient.LactationType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

type anemiaOverrides struct {
	HemoglobinGdl *float64 `json:"hemoglobin_gdl"`
	AltitudeM     *float64 `json:"altitude_m"`
}

func (pc *ProtocolController) IronProtocol(c *gin.Context) {
	uid := c.GetUint("userID")
	pid, ok := patientIDParam(c)
	if !ok {
		return
	}
	patient, err := pc.Patients.GetPatient(uid, pid)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrPatientNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var overrides anemiaOverrides
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&overrides); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	in := nutrition.AnemiaInput{
		Anemia:         patient.Anemia,
		HemoglobinGdl:  patient.HemoglobinGdl,
		AltitudeM:      patient.AltitudeM,
		Sex:            patient.Sex,
		AgeMonths:      patient.AgeMonthsAt(time.Now()),
		WeightKg:       patient.WeightKg,
		Pregnant:       patient.Pregnant,
		Premature:      patient.Premature,
		LowBirthWeight: patient.LowBirthWeight,
	}
	if overrides.HemoglobinGdl != nil {
		in.HemoglobinGdl = *overrides.HemoglobinGdl
	}
	if overrides.AltitudeM != nil {
		in.AltitudeM = *overrides.AltitudeM
	}

	c.JSON(http.StatusOK, nutrition.ResolveIronProtocol(in))
}
