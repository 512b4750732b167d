// Package project holds the project model exercised by the integration tests.
package project

// Project carries a single boolean flag. The zero value has the flag unset.
type Project struct {
	flag bool
}

// Flag reports whether the flag is set.
func (p *Project) Flag() bool {
	return p.flag
}

// SetFlag sets the flag.
func (p *Project) SetFlag(flag bool) {
	p.flag = flag
}
