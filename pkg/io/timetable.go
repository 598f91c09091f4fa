package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// ReadTimetable builds a course conflict graph from CSV enrollment rows.
// The header must contain course_id and student_id columns (any order,
// extra columns ignored). Courses become vertices in order of first
// appearance, labelled with their id.
func ReadTimetable(r io.Reader) (*graph.Graph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "timetable csv is empty")
	}
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "read timetable header")
	}
	courseCol := slices.Index(normalize(header), "course_id")
	studentCol := slices.Index(normalize(header), "student_id")
	if courseCol < 0 || studentCol < 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat,
			"timetable csv must have course_id and student_id columns, got %v", header)
	}

	var courses []string
	courseID := make(map[string]int)
	enrolled := make(map[string][]int)
	seen := make(map[[2]string]struct{})
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if len(rec) <= max(courseCol, studentCol) {
			return nil, formatError(line, "expected at least %d columns, got %d", max(courseCol, studentCol)+1, len(rec))
		}
		course, student := strings.TrimSpace(rec[courseCol]), strings.TrimSpace(rec[studentCol])
		if course == "" || student == "" {
			continue
		}
		id, ok := courseID[course]
		if !ok {
			id = len(courses)
			courseID[course] = id
			courses = append(courses, course)
		}
		if _, dup := seen[[2]string{course, student}]; dup {
			continue
		}
		seen[[2]string{course, student}] = struct{}{}
		enrolled[student] = append(enrolled[student], id)
	}

	b, err := graph.NewBuilder(len(courses))
	if err != nil {
		return nil, err
	}
	for v, c := range courses {
		b.SetLabel(v, c)
	}
	for _, ids := range enrolled {
		for i, u := range ids {
			for _, v := range ids[i+1:] {
				if err := b.AddEdge(u, v); err != nil {
					return nil, fmt.Errorf("timetable: %w", err)
				}
			}
		}
	}
	return b.Build(), nil
}

func normalize(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	return out
}
