package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
)

// Security event types
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailed          = "login_failed"
	EventLogout               = "logout"
	EventUserRegistered       = "user_registered"
	EventUserCreated          = "user_created"
	EventRoleChanged          = "role_changed"
	EventStatusChanged        = "status_changed"
	EventPermissionsChanged   = "permissions_changed"
	EventHostelCreated        = "hostel_created"
	EventHostelUpdated        = "hostel_updated"
	EventHostelDeleted        = "hostel_deleted"
	EventHostelAssigned       = "hostel_assigned"
	EventHostelUnassigned     = "hostel_unassigned"
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
	EventLogsCleared          = "security_logs_cleared"
	EventDataExported         = "data_exported"
)

// SecurityLogService handles the append-only security audit trail
type SecurityLogService struct {
	logRepo repositories.SecurityLogRepository
}

// NewSecurityLogService creates a new security log service
func NewSecurityLogService(logRepo repositories.SecurityLogRepository) *SecurityLogService {
	return &SecurityLogService{logRepo: logRepo}
}

// Log records a security event. Logging is best effort; a storage failure
// must never fail the operation being logged.
func (s *SecurityLogService) Log(ctx context.Context, eventType, userID string, details map[string]interface{}) {
	payload := "{}"
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = string(b)
		}
	}

	entry := &models.SecurityLog{
		ID:        uuid.New().String(),
		EventType: eventType,
		Details:   payload,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if err := s.logRepo.Append(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record security event %s: %v", eventType, err)
	}
}

// List returns all security log entries, newest first
func (s *SecurityLogService) List(ctx context.Context) ([]*models.SecurityLog, error) {
	return s.logRepo.List(ctx)
}

// Clear wipes the security log. The wipe itself is recorded as the first
// entry of the fresh log.
func (s *SecurityLogService) Clear(ctx context.Context, actorID string) error {
	if err := s.logRepo.Clear(ctx); err != nil {
		return err
	}

	s.Log(ctx, EventLogsCleared, actorID, nil)

	log.Printf("✅ Security logs cleared by user: %s", actorID)
	return nil
}
