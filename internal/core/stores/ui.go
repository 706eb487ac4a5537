package stores

import "sync"

const uiBlob = "ui-storage"

// UIState is a copy of the layout flags
type UIState struct {
	IsSidebarOpen      bool `json:"isSidebarOpen"`
	IsSidebarCollapsed bool `json:"isSidebarCollapsed"`
	IsSearchFocused    bool `json:"isSearchFocused"`
}

type uiDoc struct {
	IsSidebarCollapsed bool `json:"isSidebarCollapsed"`
}

// UI holds layout flags; only the collapsed sidebar survives a restart
type UI struct {
	mu   sync.Mutex
	st   UIState
	blob Blob
}

// NewUI restores the collapsed flag from b
func NewUI(b Blob) *UI {
	var doc uiDoc
	restore(b, uiBlob, &doc)
	return &UI{st: UIState{IsSidebarOpen: true, IsSidebarCollapsed: doc.IsSidebarCollapsed}, blob: b}
}

// State returns a copy of the flags
func (u *UI) State() UIState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.st
}

// ToggleSidebar flips the sidebar
func (u *UI) ToggleSidebar() {
	u.mu.Lock()
	u.st.IsSidebarOpen = !u.st.IsSidebarOpen
	u.mu.Unlock()
}

// SetSidebarOpen opens or closes the sidebar
func (u *UI) SetSidebarOpen(open bool) {
	u.mu.Lock()
	u.st.IsSidebarOpen = open
	u.mu.Unlock()
}

// SetSidebarCollapsed collapses the sidebar and persists the choice
func (u *UI) SetSidebarCollapsed(collapsed bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.st.IsSidebarCollapsed = collapsed
	persist(u.blob, uiBlob, uiDoc{IsSidebarCollapsed: collapsed})
}

// SetSearchFocused tracks search box focus
func (u *UI) SetSearchFocused(focused bool) {
	u.mu.Lock()
	u.st.IsSearchFocused = focused
	u.mu.Unlock()
}

// Reset restores defaults without touching the blob
func (u *UI) Reset() {
	u.mu.Lock()
	u.st = UIState{IsSidebarOpen: true}
	u.mu.Unlock()
}
