package implementation

import (
	"context"
	"errors"

	"giziai-be/internal/entity"
	"giziai-be/internal/mapper"
	"giziai-be/internal/model"
	"giziai-be/internal/repository/contract"
	"giziai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeFileMapper
}

func NewKnowledgeFileRepository(db *gorm.DB) contract.KnowledgeFileRepository {
	return &KnowledgeFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeFileMapper(),
	}
}

func (r *KnowledgeFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeFileRepositoryImpl) Create(ctx context.Context, file *entity.KnowledgeFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeFileRepositoryImpl) Update(ctx context.Context, file *entity.KnowledgeFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeFileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeFile{}, id).Error
}

func (r *KnowledgeFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeFile, error) {
	var m model.KnowledgeFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeFile, error) {
	var models []*model.KnowledgeFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeFileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeFile{}).Count(&count).Error
	return count, err
}
