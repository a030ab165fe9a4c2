package database

import (
	"context"
	"errors"
	"fmt"

	"agencybooks/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore 基于 storage_entries 表的键值存储
type KVStore struct {
	db *gorm.DB
}

// NewKVStore 创建键值存储
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db}
}

// Get 读取键对应的值，不存在时 ok 为 false
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).Where(&models.StorageEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set 写入键值，已存在则覆盖
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}
	return nil
}
