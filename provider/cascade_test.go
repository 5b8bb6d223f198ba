package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/forumkit/linguahub"
)

func TestCascade_PrimarySucceeds(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.OK("primary")}}
	fallback := NewMock()
	c := NewCascade(primary, fallback)

	res := c.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultOK || res.Text != "primary" {
		t.Fatalf("res = %+v", res)
	}
	if fallback.CallCount != 0 {
		t.Error("fallback consulted despite primary success")
	}
}

func TestCascade_FallbackRescuesFailure(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.Failed(errors.New("down"))}}
	fallback := &Mock{Results: []linguahub.Result{linguahub.OK("fallback")}}
	c := NewCascade(primary, fallback)

	res := c.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultOK || res.Text != "fallback" {
		t.Fatalf("res = %+v", res)
	}
}

func TestCascade_FallbackRescuesUnsupportedPair(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.Unsupported()}}
	fallback := &Mock{Results: []linguahub.Result{linguahub.OK("fallback")}}
	c := NewCascade(primary, fallback)

	res := c.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "eo")
	if res.Kind != linguahub.ResultOK {
		t.Fatalf("res = %+v", res)
	}
}

func TestCascade_PrimaryResultStandsWhenBothFail(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.Unsupported()}}
	fallback := &Mock{Results: []linguahub.Result{linguahub.Failed(errors.New("also down"))}}
	c := NewCascade(primary, fallback)

	res := c.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "eo")
	if res.Kind != linguahub.ResultUnsupportedLanguage {
		t.Fatalf("Kind = %v, want the primary's failure kind", res.Kind)
	}
}

func TestCascade_NilFallback(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.Unsupported()}}
	c := NewCascade(primary, nil)

	res := c.TranslateBatch(context.Background(), "<p>Hello </p>\n", "en", "eo")
	if res.Kind != linguahub.ResultUnsupportedLanguage {
		t.Fatalf("Kind = %v", res.Kind)
	}
}

func TestCascade_CancelledContextSkipsFallback(t *testing.T) {
	primary := &Mock{Results: []linguahub.Result{linguahub.Failed(context.Canceled)}}
	fallback := NewMock()
	c := NewCascade(primary, fallback)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.TranslateBatch(ctx, "<p>Hello </p>\n", "en", "es")
	if res.Kind != linguahub.ResultAPIError {
		t.Fatalf("Kind = %v", res.Kind)
	}
	if fallback.CallCount != 0 {
		t.Error("fallback consulted after cancellation")
	}
}
