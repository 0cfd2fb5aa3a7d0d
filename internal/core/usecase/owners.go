package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type ListOwnersUseCase struct {
	owners port.OwnerRepositoryPort
}

func NewListOwnersUseCase(owners port.OwnerRepositoryPort) *ListOwnersUseCase {
	return &ListOwnersUseCase{owners: owners}
}

func (uc *ListOwnersUseCase) Execute(ctx context.Context) ([]domain.Owner, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListOwners"})
	ucLogger.Info("Use case started", nil)

	owners, err := uc.owners.FindAll(ctx)
	if err != nil {
		ucLogger.Error("Failed to load owners", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(owners)})
	return owners, nil
}

type GetOwnerUseCase struct {
	owners port.OwnerRepositoryPort
}

func NewGetOwnerUseCase(owners port.OwnerRepositoryPort) *GetOwnerUseCase {
	return &GetOwnerUseCase{owners: owners}
}

// Execute возвращает (nil, nil), если владелец не найден.
func (uc *GetOwnerUseCase) Execute(ctx context.Context, id string) (*domain.Owner, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetOwner",
		"owner_id": id,
	})
	ucLogger.Info("Use case started", nil)

	owner, err := uc.owners.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load owner", err, nil)
		return nil, err
	}
	if owner == nil {
		ucLogger.Info("Owner not found", nil)
		return nil, nil
	}

	ucLogger.Info("Use case finished successfully", nil)
	return owner, nil
}

type CreateOwnerUseCase struct {
	owners port.OwnerRepositoryPort
}

func NewCreateOwnerUseCase(owners port.OwnerRepositoryPort) *CreateOwnerUseCase {
	return &CreateOwnerUseCase{owners: owners}
}

func (uc *CreateOwnerUseCase) Execute(ctx context.Context, data domain.Owner) (*domain.Owner, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateOwner"})
	ucLogger.Info("Use case started", nil)

	owner, err := domain.NewOwner(data)
	if err != nil {
		ucLogger.Warn("Invalid owner data", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.owners.Create(ctx, owner); err != nil {
		ucLogger.Error("Failed to save owner", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"owner_id": owner.IDOwner})
	return owner, nil
}
