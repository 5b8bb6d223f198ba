// Package lang provides language detection helpers.
package lang

import "github.com/forumkit/linguahub"

// Detector is an alias to the main package interface.
type Detector = linguahub.Detector
