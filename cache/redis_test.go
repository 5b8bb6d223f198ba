package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedis_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "test:")

	mock.ExpectGet("test:key").SetVal("value")

	got, ok := c.Get(context.Background(), "key")
	if !ok || got != "value" {
		t.Errorf("Get = (%q, %v), want (value, true)", got, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedis_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "test:")

	mock.ExpectGet("test:missing").RedisNil()

	if _, ok := c.Get(context.Background(), "missing"); ok {
		t.Error("Get returned a hit for a missing key")
	}
}

func TestRedis_GetErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "test:")

	mock.ExpectGet("test:key").SetErr(errors.New("connection lost"))

	if _, ok := c.Get(context.Background(), "key"); ok {
		t.Error("Get returned a hit on a connection error")
	}
}

func TestRedis_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "test:")

	mock.ExpectSet("test:key", "value", time.Minute).SetVal("OK")

	if err := c.Set(context.Background(), "key", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedis_SetNegativeTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "test:")

	// Negative TTL is clamped to no expiry.
	mock.ExpectSet("test:key", "value", 0).SetVal("OK")

	if err := c.Set(context.Background(), "key", "value", -time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestRedis_DefaultPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisFromClient(db, "")

	mock.ExpectGet("linguahub:key").SetVal("value")

	if got, ok := c.Get(context.Background(), "key"); !ok || got != "value" {
		t.Errorf("Get = (%q, %v)", got, ok)
	}
}
