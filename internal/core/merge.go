package core

// MergeLeads overlays CRM-owned state onto freshly imported leads. For a
// fresh lead whose ID exists in the snapshot set, non-NULL persisted
// values of status, assignment, reminder and creation time win over the
// import; NULL columns let the import value through. Leads without a
// snapshot pass through unchanged. The inputs are not mutated.
func MergeLeads(fresh []Lead, existing []CRMSnapshot) []Lead {
	byID := make(map[string]CRMSnapshot, len(existing))
	for _, e := range existing {
		byID[e.ID] = e
	}

	out := make([]Lead, len(fresh))
	for i, lead := range fresh {
		if e, ok := byID[lead.ID]; ok {
			if e.Status != nil {
				lead.Status = *e.Status
			}
			if e.AssignedTo != nil {
				lead.AssignedTo = *e.AssignedTo
			}
			if e.NextReminder != nil {
				lead.NextReminder = *e.NextReminder
			}
			if e.CreatedAt != nil {
				lead.CreatedAt = *e.CreatedAt
			}
		}
		out[i] = lead
	}
	return out
}
