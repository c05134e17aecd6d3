package model

// State is everything the product page shows for one browser session.
type State struct {
	Products        []Product `json:"products"`
	Loading         bool      `json:"loading"`
	Loaded          bool      `json:"loaded"`
	Error           string    `json:"error,omitempty"`
	Draft           Draft     `json:"draft"`
	EditingID       *uint64   `json:"editing_id,omitempty"`
	ModalOpen       bool      `json:"modal_open"`
	PendingDeleteID *uint64   `json:"pending_delete_id,omitempty"`
}

// NewState returns the state of a session that has not rendered yet. Nothing is
// in flight for it, so it is not loading.
func NewState() *State {
	return &State{
		Products: []Product{},
	}
}

// Editing reports whether the form is in update mode.
func (s *State) Editing() bool {
	return s.EditingID != nil
}

// FormView is the input of the product form template.
type FormView struct {
	Draft     Draft
	EditingID *uint64
}

func (s *State) Form() FormView {
	return FormView{Draft: s.Draft, EditingID: s.EditingID}
}

// StateResponse is the JSON shape of GET /api/state.
type StateResponse struct {
	SessionID string `json:"session_id"`
	State     *State `json:"state"`
}
