package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/showformatterpro/showformatterpro/internal/config"
	"github.com/showformatterpro/showformatterpro/internal/model"
)

// TestInitSQLiteAndPersist 初始化、迁移与基本读写
func TestInitSQLiteAndPersist(t *testing.T) {
	cfg := config.SQLiteConfig{
		Path:            filepath.Join(t.TempDir(), "formatter.db"),
		ConnMaxLifetime: time.Hour,
	}
	require.NoError(t, InitSQLite(cfg))
	defer Close()

	require.NoError(t, Health())

	task := &model.ParseTask{
		ID:       "fmt-test-0001",
		Platform: "cisco_ios",
		Command:  "show ip route",
		Status:   model.ParseTaskStatusSuccess,
		Records:  2,
	}
	require.NoError(t, GetDB().Create(task).Error)

	entries := []model.RouteEntry{
		{TaskID: task.ID, Proto: "O", Addr: "10.245.11.0", Mask: "24", Gw: "10.245.2.2", Interface: "GigabitEthernet0/0"},
		{TaskID: task.ID, Proto: "C", Addr: "10.245.2.0", Mask: "30", Interface: "GigabitEthernet0/0"},
	}
	require.NoError(t, GetDB().CreateInBatches(entries, 200).Error)

	var got []model.RouteEntry
	require.NoError(t, GetDB().Where("task_id = ?", task.ID).Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, "10.245.11.0", got[0].Addr)
}

// TestIsBusyError 并发锁错误识别
func TestIsBusyError(t *testing.T) {
	assert.False(t, IsBusyError(nil))
	assert.True(t, IsBusyError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, IsBusyError(errors.New("cannot start a transaction within a transaction")))
	assert.False(t, IsBusyError(errors.New("UNIQUE constraint failed")))
}

// TestWithRetry 非锁错误不重试，锁错误按退避重试
func TestWithRetry(t *testing.T) {
	calls := 0
	err := WithRetry(func(*gorm.DB) error {
		calls++
		return errors.New("UNIQUE constraint failed")
	}, 3, time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "非锁错误立即返回")

	calls = 0
	err = WithRetry(func(*gorm.DB) error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	}, 5, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}
