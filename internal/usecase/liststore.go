package usecase

import (
	"strings"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
)

// noSelection marks an empty list or domain selection.
const noSelection = -1

// ListStore is the in-memory collection of named website lists together
// with the current list/domain selection. It is owned by a single
// goroutine (the TUI update loop or the CLI path) and needs no locking.
//
// Selection invariant: a domain selection is only ever valid while a
// list is selected and that list is non-empty. Every mutation re-validates
// both indices.
type ListStore struct {
	lists          []domain.WebsiteList
	selectedList   int
	selectedDomain int
}

// NewListStore creates an empty store with no selection.
func NewListStore() *ListStore {
	return &ListStore{
		selectedList:   noSelection,
		selectedDomain: noSelection,
	}
}

// SetLists replaces the store contents, selecting the first list and its
// first domain when present. Used when loading lists from config.
func (s *ListStore) SetLists(lists []domain.WebsiteList) {
	s.lists = lists
	s.selectedList = noSelection
	s.selectedDomain = noSelection
	if len(s.lists) > 0 {
		s.selectedList = 0
		if len(s.lists[0].Domains) > 0 {
			s.selectedDomain = 0
		}
	}
}

// Lists returns the stored website lists.
func (s *ListStore) Lists() []domain.WebsiteList {
	return s.lists
}

// SelectedList returns the selected list index, if any.
func (s *ListStore) SelectedList() (int, bool) {
	return s.selectedList, s.selectedList != noSelection
}

// SelectedDomain returns the selected domain index within the selected
// list, if any.
func (s *ListStore) SelectedDomain() (int, bool) {
	return s.selectedDomain, s.selectedDomain != noSelection
}

// CurrentList returns the selected website list, if any.
func (s *ListStore) CurrentList() (*domain.WebsiteList, bool) {
	if s.selectedList == noSelection {
		return nil, false
	}
	return &s.lists[s.selectedList], true
}

// SelectedDomains returns the domains of the selected list, or nil when
// no list is selected.
func (s *ListStore) SelectedDomains() []string {
	list, ok := s.CurrentList()
	if !ok {
		return nil
	}
	out := make([]string, len(list.Domains))
	copy(out, list.Domains)
	return out
}

// AllDomains returns every domain across all lists, in order. Used by
// the headless CLI path, which blocks everything configured.
func (s *ListStore) AllDomains() []string {
	var out []string
	for _, list := range s.lists {
		out = append(out, list.Domains...)
	}
	return out
}

// AddList appends a new empty list and auto-selects it, clearing the
// domain selection. Empty names and exact duplicates are rejected.
func (s *ListStore) AddList(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, list := range s.lists {
		if list.Name == name {
			return false
		}
	}
	s.lists = append(s.lists, domain.WebsiteList{Name: name})
	s.selectedList = len(s.lists) - 1
	s.selectedDomain = noSelection
	return true
}

// DeleteList removes the list at index, re-selecting the list now at the
// same position (or the last one), and clears the domain selection.
func (s *ListStore) DeleteList(index int) bool {
	if index < 0 || index >= len(s.lists) {
		return false
	}
	s.lists = append(s.lists[:index], s.lists[index+1:]...)
	if len(s.lists) == 0 {
		s.selectedList = noSelection
	} else if index >= len(s.lists) {
		s.selectedList = len(s.lists) - 1
	} else {
		s.selectedList = index
	}
	s.selectedDomain = noSelection
	return true
}

// AddDomain appends a trimmed domain to the list at listIndex and
// auto-selects it. Empty input and exact duplicates within the list are
// rejected.
func (s *ListStore) AddDomain(listIndex int, d string) bool {
	if listIndex < 0 || listIndex >= len(s.lists) {
		return false
	}
	d = strings.TrimSpace(d)
	if d == "" {
		return false
	}
	list := &s.lists[listIndex]
	for _, existing := range list.Domains {
		if existing == d {
			return false
		}
	}
	list.Domains = append(list.Domains, d)
	s.selectedList = listIndex
	s.selectedDomain = len(list.Domains) - 1
	return true
}

// DeleteDomain removes the domain at domainIndex from the list at
// listIndex, re-selecting analogous to DeleteList and clearing the
// domain selection when the list becomes empty.
func (s *ListStore) DeleteDomain(listIndex, domainIndex int) bool {
	if listIndex < 0 || listIndex >= len(s.lists) {
		return false
	}
	list := &s.lists[listIndex]
	if domainIndex < 0 || domainIndex >= len(list.Domains) {
		return false
	}
	list.Domains = append(list.Domains[:domainIndex], list.Domains[domainIndex+1:]...)
	if len(list.Domains) == 0 {
		s.selectedDomain = noSelection
	} else if domainIndex >= len(list.Domains) {
		s.selectedDomain = len(list.Domains) - 1
	} else {
		s.selectedDomain = domainIndex
	}
	return true
}

// NextList moves the list selection down with wrap-around.
func (s *ListStore) NextList() {
	if len(s.lists) == 0 {
		return
	}
	if s.selectedList == noSelection {
		s.selectedList = 0
	} else {
		s.selectedList = (s.selectedList + 1) % len(s.lists)
	}
	s.selectedDomain = noSelection
}

// PrevList moves the list selection up with wrap-around.
func (s *ListStore) PrevList() {
	if len(s.lists) == 0 {
		return
	}
	if s.selectedList == noSelection || s.selectedList == 0 {
		s.selectedList = len(s.lists) - 1
	} else {
		s.selectedList--
	}
	s.selectedDomain = noSelection
}

// NextDomain moves the domain selection down with wrap-around.
func (s *ListStore) NextDomain() {
	list, ok := s.CurrentList()
	if !ok || len(list.Domains) == 0 {
		return
	}
	if s.selectedDomain == noSelection {
		s.selectedDomain = 0
	} else {
		s.selectedDomain = (s.selectedDomain + 1) % len(list.Domains)
	}
}

// PrevDomain moves the domain selection up with wrap-around.
func (s *ListStore) PrevDomain() {
	list, ok := s.CurrentList()
	if !ok || len(list.Domains) == 0 {
		return
	}
	if s.selectedDomain == noSelection || s.selectedDomain == 0 {
		s.selectedDomain = len(list.Domains) - 1
	} else {
		s.selectedDomain--
	}
}

// EnterDomains moves focus into the selected list's domain pane,
// selecting its first domain. No-op when the list is empty.
func (s *ListStore) EnterDomains() {
	list, ok := s.CurrentList()
	if !ok || len(list.Domains) == 0 {
		return
	}
	s.selectedDomain = 0
}

// LeaveDomains clears the domain selection, returning focus to the
// list pane.
func (s *ListStore) LeaveDomains() {
	s.selectedDomain = noSelection
}
