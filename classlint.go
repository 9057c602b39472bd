// Package classlint checks stylesheets and markup against a CSS class
// naming and scoping convention.
//
// # The Convention
//
// Class names fall into three roles, marked by prefix:
//
//   - Container classes (c-, g-, l-, m-) scope a component, global element,
//     layout region, or module. A single element has exactly one.
//   - Modifier classes (has-, is-) alter a container and are only valid on
//     the same element as a container class: .c-card.has-video
//   - Private classes (_) are implementation details of a container and are
//     only valid as descendants of a container-classed element: .c-card ._body
//
// # Checking
//
// The core consumes already-parsed selectors and markup class lists and
// reports violations of the structural rules:
//
//	conv := classlint.DefaultConvention()
//	path, err := classlint.Analyze(raw, classlint.NestingContext{}, conv)
//	violations := classlint.RunRules(path, conv)
//
// Front-ends for CSS/SCSS files (ParseStylesheet) and HTML/templ files
// (ScanMarkup) produce the inputs, and Run executes the full two-pass
// analysis over many inputs with a worker pool:
//
//	result, err := classlint.Run(ctx, inputs, conv, classlint.RunOptions{})
//
// # CLI Tool
//
// classlint also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/classlint/cmd/classlint@latest
package classlint
