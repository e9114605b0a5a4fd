// Package cssmanifest builds image preload manifests from stylesheets.
//
// Every url(...) reference in the matched stylesheets is resolved to a file
// on disk. Local images with an allowed extension are recorded with their
// size and any tags from a trailing annotation:
//
//	.hero { background: url(../images/hero.jpg) /*preload:hero,above-fold*/; }
//
// The result is a manifest.json listing the images largest first:
//
//	{"path":"","files":[{"path":"/images/hero.jpg","size":48213,"tags":["hero","above-fold"]}]}
//
// # Building
//
//	config := cssmanifest.Config{
//		SourceDir: "web/styles",
//		Includes:  []string{"**/*.css"},
//		BaseDir:   "",
//	}
//	result, err := cssmanifest.Build(config)
//
// # CLI Tool
//
// cssmanifest also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssmanifest/cmd/cssmanifest@latest
package cssmanifest
