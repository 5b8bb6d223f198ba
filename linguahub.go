// Package linguahub translates forum post and topic content through the
// LinguaHub cloud translation API while preserving HTML structure.
//
// Content is decomposed into text-bearing leaf nodes, packed into
// byte-length-bounded batches, translated one batch at a time, and
// reassembled back into the original markup. Batch failures fall back to
// the untranslated text; a fragment/block count mismatch fails the whole
// document rather than producing a partial translation.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/forumkit/linguahub"
//	    "github.com/forumkit/linguahub/cache"
//	    "github.com/forumkit/linguahub/processor"
//	    "github.com/forumkit/linguahub/provider"
//	)
//
//	func main() {
//	    hub := provider.NewHub(provider.HubConfig{
//	        Tenant:  "acme-forum",
//	        Project: "community",
//	    }, cache.NewMemory(), nil)
//
//	    t := linguahub.New(hub, hub,
//	        linguahub.WithProcessor(processor.NewHTMLProcessor()),
//	        linguahub.WithCache(cache.NewMemory()),
//	    )
//
//	    result, err := t.TranslateHTML(context.Background(), "<p>Hello World</p>", "es_ES")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Content)
//	}
package linguahub
