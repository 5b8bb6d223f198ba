package provider

import (
	"context"

	"github.com/forumkit/linguahub"
)

// Cascade chains a primary backend with a fallback. A batch that comes back
// from the primary as unsupported or failed is retried once on the
// fallback; if that also misses, the primary's result stands so the caller
// sees the original failure kind.
type Cascade struct {
	Primary  Translator
	Fallback Translator
}

// NewCascade creates a cascade over primary and fallback backends.
func NewCascade(primary, fallback Translator) *Cascade {
	return &Cascade{Primary: primary, Fallback: fallback}
}

// TranslateBatch implements Translator.
func (c *Cascade) TranslateBatch(ctx context.Context, batch, from, to string) linguahub.Result {
	res := c.Primary.TranslateBatch(ctx, batch, from, to)
	if res.Kind == linguahub.ResultOK || c.Fallback == nil {
		return res
	}
	if err := ctx.Err(); err != nil {
		return res
	}

	fb := c.Fallback.TranslateBatch(ctx, batch, from, to)
	if fb.Kind == linguahub.ResultOK {
		return fb
	}
	return res
}

// Verify Cascade implements Translator
var _ Translator = (*Cascade)(nil)
