// Package app holds the application state: the single resume record and every edit, preview and export on it.
package app

import "fmt"

// NotFoundError reports an unknown section or an entry id that is not in its list.
type NotFoundError struct {
	Section string
	ID      string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("unknown section: %s", e.Section)
	}
	return fmt.Sprintf("no %s entry with id %s", e.Section, e.ID)
}
