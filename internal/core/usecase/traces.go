package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type GetPropertyTracesUseCase struct {
	traces port.PropertyTraceRepositoryPort
}

func NewGetPropertyTracesUseCase(traces port.PropertyTraceRepositoryPort) *GetPropertyTracesUseCase {
	return &GetPropertyTracesUseCase{traces: traces}
}

func (uc *GetPropertyTracesUseCase) Execute(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetPropertyTraces",
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	traces, err := uc.traces.FindByProperty(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Failed to load traces", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(traces)})
	return traces, nil
}

type GetAllTracesUseCase struct {
	traces port.PropertyTraceRepositoryPort
}

func NewGetAllTracesUseCase(traces port.PropertyTraceRepositoryPort) *GetAllTracesUseCase {
	return &GetAllTracesUseCase{traces: traces}
}

func (uc *GetAllTracesUseCase) Execute(ctx context.Context) ([]domain.PropertyTrace, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetAllTraces"})
	ucLogger.Info("Use case started", nil)

	traces, err := uc.traces.FindAll(ctx)
	if err != nil {
		ucLogger.Error("Failed to load traces", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(traces)})
	return traces, nil
}

type CreateTraceUseCase struct {
	traces port.PropertyTraceRepositoryPort
}

func NewCreateTraceUseCase(traces port.PropertyTraceRepositoryPort) *CreateTraceUseCase {
	return &CreateTraceUseCase{traces: traces}
}

func (uc *CreateTraceUseCase) Execute(ctx context.Context, data domain.PropertyTrace) (*domain.PropertyTrace, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "CreateTrace",
		"property_id": data.IDProperty,
	})
	ucLogger.Info("Use case started", nil)

	trace, err := domain.NewPropertyTrace(data)
	if err != nil {
		ucLogger.Warn("Invalid trace data", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.traces.Create(ctx, trace); err != nil {
		ucLogger.Error("Failed to save trace", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"trace_id": trace.IDPropertyTrace})
	return trace, nil
}

type DeleteTraceUseCase struct {
	traces port.PropertyTraceRepositoryPort
}

func NewDeleteTraceUseCase(traces port.PropertyTraceRepositoryPort) *DeleteTraceUseCase {
	return &DeleteTraceUseCase{traces: traces}
}

func (uc *DeleteTraceUseCase) Execute(ctx context.Context, traceID string) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DeleteTrace",
		"trace_id": traceID,
	})
	ucLogger.Info("Use case started", nil)

	deleted, err := uc.traces.Delete(ctx, traceID)
	if err != nil {
		ucLogger.Error("Failed to delete trace", err, nil)
		return false, err
	}

	ucLogger.Info("Use case finished", port.Fields{"deleted": deleted})
	return deleted, nil
}
