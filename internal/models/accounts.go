package models

import (
	"encoding/json"
	"time"
)

// User an account, optionally bound to the author it writes as
type User struct {
	ID        uint64
	Login     string          `tame:"unique;size:64"`
	Author    *Author         `tame:"o2o:blog.Author;related_name:user;null;on_delete:set null"`
	Settings  json.RawMessage `tame:"null"`
	LastLogin *time.Time
	Active    bool `tame:"default:true;index"`
}

func (User) TableName() string {
	return "users"
}
