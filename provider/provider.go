// Package provider implements translation backends for the engine.
package provider

import "github.com/forumkit/linguahub"

// Translator is the interface for batch translation backends.
// This is an alias to the main package interface for convenience.
type Translator = linguahub.BatchTranslator

// Result is an alias to the main package type.
type Result = linguahub.Result
