package repository

import (
	"kopdes-pos/internal/model"

	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(member *model.Member) error
	FindAll() ([]model.Member, error)
	FindByID(id string) (*model.Member, error)
	Delete(id string) error
}

type memberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db}
}

func (r *memberRepo) Create(member *model.Member) error {
	return r.db.Create(member).Error
}

func (r *memberRepo) FindAll() ([]model.Member, error) {
	var members []model.Member
	err := r.db.Order("name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepo) FindByID(id string) (*model.Member, error) {
	var member model.Member
	err := r.db.First(&member, "id = ?", id).Error
	return &member, err
}

func (r *memberRepo) Delete(id string) error {
	return r.db.Delete(&model.Member{}, "id = ?", id).Error
}
