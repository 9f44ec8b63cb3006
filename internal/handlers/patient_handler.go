package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/ws"
)

// PatientSummary is what the doctor sees in the patient list. No
// password, no role.
type PatientSummary struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	MedicalInfo   string                `json:"medicalInfo"`
	Notifications []models.Notification `json:"notifications"`
}

type DeleteAccountRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

// DeleteAccount removes a patient account. The delete filter includes the
// patient role, so pointing it at the doctor record is a no-op that still
// reports success.
func (h *Handler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "patientId is required"})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), req.PatientID, models.RolePatient); err != nil {
		h.Log.Error().Err(err).Str("patientId", req.PatientID).Msg("delete-account: store delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "account deleted"})
}

// ListPatients returns every patient record for the doctor's dashboard.
func (h *Handler) ListPatients(c *gin.Context) {
	users, err := h.Store.ListByRole(c.Request.Context(), models.RolePatient)
	if err != nil {
		h.Log.Error().Err(err).Msg("patients: store list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	patients := make([]PatientSummary, 0, len(users))
	for _, u := range users {
		notifications := u.Notifications
		if notifications == nil {
			notifications = []models.Notification{}
		}
		patients = append(patients, PatientSummary{
			ID:            u.ID,
			Name:          u.Name,
			MedicalInfo:   u.MedicalInfo,
			Notifications: notifications,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "patients": patients})
}

// PatientInfo returns the calling patient's own record. The subject id
// comes from the verified token, never from the request.
func (h *Handler) PatientInfo(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.Store.FindByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "account no longer exists"})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("id", userID).Msg("patient-info: store lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	notifications := user.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"medicalInfo":   user.MedicalInfo,
		"notifications": notifications,
	})
}

type UpdatePatientRequest struct {
	PatientID    string `json:"patientId" binding:"required"`
	MedicalInfo  string `json:"medicalInfo"`
	Notification string `json:"notification"`
}

// UpdatePatient overwrites a patient's medicalInfo and/or appends a
// notification, in one store write. When a notification was appended the
// event also goes out on the broadcast channel; delivery there is
// fire-and-forget.
func (h *Handler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "patientId is required"})
		return
	}

	if _, err := h.Store.FindByID(c.Request.Context(), req.PatientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		h.Log.Error().Err(err).Str("patientId", req.PatientID).Msg("update-patient: store lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	var medicalInfo *string
	if req.MedicalInfo != "" {
		medicalInfo = &req.MedicalInfo
	}
	var notification *models.Notification
	if req.Notification != "" {
		notification = &models.Notification{Message: req.Notification, Date: time.Now()}
	}

	err := h.Store.UpdatePatient(c.Request.Context(), req.PatientID, medicalInfo, notification)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between the lookup and the write.
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("patientId", req.PatientID).Msg("update-patient: store update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	if notification != nil {
		h.Hub.Broadcast(ws.NotificationEvent(req.PatientID, req.Notification))
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
