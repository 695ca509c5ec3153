package app

import (
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section names a repeatable list of the record.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionProjects       Section = "projects"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionSkills         Section = "skills"
)

// EntrySections lists the sections whose entries are edited field by field.
var EntrySections = []Section{SectionExperience, SectionProjects, SectionEducation, SectionCertifications}

// ParseSection validates a section name taken from a request.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if sec == SectionSkills || slices.Contains(EntrySections, sec) {
		return sec, nil
	}
	return "", &NotFoundError{Section: s}
}

type entryPtr[T any] interface {
	*T
	types.Entry
}

func indexOf[T any, P entryPtr[T]](list []T, id string) int {
	for i := range list {
		if P(&list[i]).EntryID() == id {
			return i
		}
	}
	return -1
}

func updateEntry[T any, P entryPtr[T]](list []T, section Section, id, field, value string) error {
	i := indexOf[T, P](list, id)
	if i < 0 {
		return &NotFoundError{Section: string(section), ID: id}
	}
	return P(&list[i]).SetField(field, value)
}

func removeEntry[T any, P entryPtr[T]](list []T, section Section, id string) ([]T, error) {
	i := indexOf[T, P](list, id)
	if i < 0 {
		return list, &NotFoundError{Section: string(section), ID: id}
	}
	return slices.Delete(list, i, i+1), nil
}
