// Package discovery finds the weekly workbooks under the master folder.
//
// Plans live in <master>/План/<YYYY-Www>/plan_<YYYY-Www>_<employee>.xlsm and
// timecards in <master>/Факт/<YYYY-Www>/timecard_<YYYY-Www>_<employee>.xlsm.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	DefaultPlanDir = "План"
	DefaultFactDir = "Факт"
	Extension      = ".xlsm"
)

// Layout is the folder structure of the planning share.
type Layout struct {
	Master  string
	PlanDir string
	FactDir string
}

// NewLayout returns the layout rooted at master with the default folder names.
func NewLayout(master string) Layout {
	return Layout{Master: master, PlanDir: DefaultPlanDir, FactDir: DefaultFactDir}
}

func (l Layout) PlanFolder(week string) string {
	return filepath.Join(l.Master, l.PlanDir, week)
}

func (l Layout) FactFolder(week string) string {
	return filepath.Join(l.Master, l.FactDir, week)
}

// Filter decides which employees' files are taken. Known is the employee
// reference list and is always enforced. Only narrows the run to a subset
// when non-empty.
type Filter struct {
	Known []string
	Only  []string
}

// AnyEmployee keeps the known-employee check but drops the subset.
func (f Filter) AnyEmployee() Filter {
	return Filter{Known: f.Known}
}

func (f Filter) accepts(employee string) bool {
	if !slices.Contains(f.Known, employee) {
		return false
	}
	return len(f.Only) == 0 || slices.Contains(f.Only, employee)
}

// File is an accepted workbook.
type File struct {
	Path     string
	Name     string
	Employee string
}

// Listing is the content of one week folder.
type Listing struct {
	Folder   string
	Exists   bool
	Entries  []string
	Files    []File
	Rejected []string
}

// PlanFiles lists plan workbooks for the week label.
func (l Layout) PlanFiles(week string, f Filter) (Listing, error) {
	return list(l.PlanFolder(week), "plan_"+week+"_", f)
}

// TimecardFiles lists timecard workbooks for the week label.
func (l Layout) TimecardFiles(week string, f Filter) (Listing, error) {
	return list(l.FactFolder(week), "timecard_"+week+"_", f)
}

// list reads folder and splits its entries into accepted files and rejected
// names. A missing folder is an empty listing.
func list(folder, prefix string, f Filter) (Listing, error) {
	out := Listing{Folder: folder}
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("reading folder %s: %w", folder, err)
	}
	out.Exists = true

	for _, e := range entries {
		name := e.Name()
		out.Entries = append(out.Entries, name)
		employee, ok := EmployeeOf(name, prefix)
		if e.IsDir() || !ok || !f.accepts(employee) {
			out.Rejected = append(out.Rejected, name)
			continue
		}
		out.Files = append(out.Files, File{
			Path:     filepath.Join(folder, name),
			Name:     name,
			Employee: employee,
		})
	}
	return out, nil
}

// EmployeeOf extracts the employee from a file name of the form
// <prefix><employee>.xlsm.
func EmployeeOf(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, Extension) {
		return "", false
	}
	employee := strings.TrimSuffix(strings.TrimPrefix(name, prefix), Extension)
	if employee == "" {
		return "", false
	}
	return employee, true
}
