package attendance

// Employee identifies one person appearing in an attendance sheet.
type Employee struct {
	ID   string
	Name string
}

// Roster returns the distinct employees of records in first-seen order.
func Roster(records []Record) []Employee {
	seen := make(map[string]struct{}, len(records))
	out := make([]Employee, 0, len(records))
	for _, record := range records {
		if record.EmployeeID == "" {
			continue
		}
		if _, ok := seen[record.EmployeeID]; ok {
			continue
		}
		seen[record.EmployeeID] = struct{}{}
		out = append(out, Employee{ID: record.EmployeeID, Name: record.Name})
	}
	return out
}

// Find returns the roster entry with the given id.
func Find(roster []Employee, id string) (Employee, bool) {
	for _, employee := range roster {
		if employee.ID == id {
			return employee, true
		}
	}
	return Employee{}, false
}
