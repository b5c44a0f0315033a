package entity

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/claimex/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Array[T any] []T

func (a *Array[T]) Scan(obj any) error {
	switch t := obj.(type) {
	case string:
		return json.Unmarshal([]byte(t), a)
	case []byte:
		return json.Unmarshal(t, a)
	}

	return fmt.Errorf("cannot scan invalid data type %T", obj)
}

func (a Array[T]) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}

	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// Tags is stored as a JSON list. Legacy rows holding a comma-joined string are
// still readable.
type Tags []string

func (t *Tags) Scan(obj any) error {
	var raw string
	switch v := obj.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*t = Tags{}
		return nil
	default:
		return fmt.Errorf("cannot scan invalid data type %T", obj)
	}

	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return err
		}

		*t = NormalizeTags(list)
		return nil
	}

	*t = SplitTags(raw)
	return nil
}

func (t Tags) Value() (driver.Value, error) {
	b, err := json.Marshal(NormalizeTags(t))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// NormalizeTags trims every tag and drops the empty ones, keeping order.
func NormalizeTags(tags []string) Tags {
	result := Tags{}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			result = append(result, tag)
		}
	}

	return result
}

func SplitTags(s string) Tags {
	return NormalizeTags(strings.Split(s, ","))
}

func (t Tags) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}

	return false
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Airdrop{},
		&CommunityPost{},
		&PostVote{},
		&Poll{},
		&PollVote{},
		&NewsArticle{},
		&ClickEvent{},
	)
}
