// Package processor provides content processing implementations.
package processor

import "github.com/forumkit/linguahub"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = linguahub.ContentProcessor

// Fragment is an alias to the main package type.
type Fragment = linguahub.Fragment
