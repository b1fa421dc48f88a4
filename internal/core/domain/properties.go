package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// LibraryProperties is build metadata a library declares for its consumers.
type LibraryProperties struct {
	// CMakeInclude is a CMake file, relative to the library root, consumers must include.
	CMakeInclude string
	LinkFlags    []string
}

// TargetProperties is the union of the properties of every library in a Selection.
type TargetProperties struct {
	// CMakeIncludes are absolute paths, in selection order.
	CMakeIncludes []string
	// LinkFlags are deduplicated, first occurrence wins.
	LinkFlags []string
}

// AggregateProperties merges the library properties of a selection.
func AggregateProperties(sel Selection) TargetProperties {
	var props TargetProperties
	for _, n := range sel {
		if inc := n.Properties.CMakeInclude; inc != "" {
			props.CMakeIncludes = append(props.CMakeIncludes, filepath.Join(n.Location, inc))
		}
		for _, flag := range n.Properties.LinkFlags {
			if !slices.Contains(props.LinkFlags, flag) {
				props.LinkFlags = append(props.LinkFlags, flag)
			}
		}
	}
	return props
}

// CMakeScript renders the properties as the contents of AggregatedCMakeFileName.
func (p TargetProperties) CMakeScript() string {
	var b strings.Builder
	b.WriteString("# generated by lingo\n")
	for _, inc := range p.CMakeIncludes {
		fmt.Fprintf(&b, "include(%q)\n", filepath.ToSlash(inc))
	}
	if len(p.LinkFlags) > 0 {
		fmt.Fprintf(&b, "link_libraries(%s)\n", strings.Join(p.LinkFlags, " "))
	}
	return b.String()
}
