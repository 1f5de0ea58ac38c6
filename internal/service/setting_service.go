package service

import (
	"context"
	"fmt"
	"strings"

	"weeskitten/internal/apperror"
	"weeskitten/internal/auth"
	"weeskitten/internal/model"
	"weeskitten/internal/repository"
)

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type SettingService interface {
	// Public returns stored settings over the defaults, without sensitive keys.
	Public(ctx context.Context) (map[string]string, error)
	All(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, actor auth.Identity, req UpdateSettingRequest) (*model.SiteSetting, error)
}

type settingService struct {
	settingRepo repository.SettingRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewSettingService(settingRepo repository.SettingRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) SettingService {
	return &settingService{settingRepo: settingRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *settingService) All(ctx context.Context) (map[string]string, error) {
	stored, err := s.settingRepo.All(ctx)
	if err != nil {
		return nil, asAppError(err, "Failed to fetch settings")
	}

	merged := make(map[string]string, len(model.DefaultSettings)+len(stored))
	for k, v := range model.DefaultSettings {
		merged[k] = v
	}
	for _, st := range stored {
		merged[st.Key] = st.Value
	}
	return merged, nil
}

func (s *settingService) Public(ctx context.Context) (map[string]string, error) {
	settings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range model.SensitiveSettingKeys {
		delete(settings, k)
	}
	return settings, nil
}

func (s *settingService) Update(ctx context.Context, actor auth.Identity, req UpdateSettingRequest) (*model.SiteSetting, error) {
	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		return nil, apperror.Validation("Key is required")
	}
	if len(req.Key) > 100 {
		return nil, apperror.Validation("Key is too long")
	}

	setting := &model.SiteSetting{Key: req.Key, Value: req.Value}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.settingRepo.Upsert(txCtx, setting); err != nil {
			return fmt.Errorf("failed to upsert setting: %w", err)
		}

		details := map[string]any{"key": req.Key}
		if !isSensitiveSetting(req.Key) {
			details["value"] = req.Value
		}
		return logAudit(txCtx, s.auditRepo, actor, model.ActionUpdateSetting, req.Key, "", details)
	})
	if err != nil {
		return nil, asAppError(err, "Failed to update setting")
	}
	return setting, nil
}

func isSensitiveSetting(key string) bool {
	for _, k := range model.SensitiveSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
