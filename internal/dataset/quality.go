package dataset

// MinPlausibleBudget is a data-hygiene special case, not a validity rule.
// The catalog carries one known bad all-time entry whose budget is a few
// hundred dollars; any budget at or below this value is treated as that
// record and dropped. Do not tune it: the real minimum plausible budget is
// unknown.
const MinPlausibleBudget = 281

// Accept reports whether a row passes the all-time budget sanity check.
func Accept(row Row) bool {
	return row.Budget > MinPlausibleBudget
}
