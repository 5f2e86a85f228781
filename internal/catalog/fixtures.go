package catalog

import "stockhub/internal/domain"

// Fixtures used when the backend is unreachable or the app runs offline
var (
	fixtureEmployees = []domain.Employee{
		{ID: 2, Name: "Jane Smith", Email: "jane@stockhub.com", Role: "employee"},
		{ID: 4, Name: "Mike Wilson", Email: "mike@stockhub.com", Role: "employee"},
		{ID: 5, Name: "Sarah Johnson", Email: "sarah@stockhub.com", Role: "employee"},
		{ID: 6, Name: "David Brown", Email: "david@stockhub.com", Role: "employee"},
		{ID: 7, Name: "Lisa Davis", Email: "lisa@stockhub.com", Role: "employee"},
		{ID: 8, Name: "Tom Anderson", Email: "tom@stockhub.com", Role: "employee"},
		{ID: 9, Name: "Emily Wilson", Email: "emily@stockhub.com", Role: "employee"},
	}

	fixtureBranches = []domain.Branch{
		{ID: 1, Name: "Main Warehouse", Location: "Central District", Capacity: 1000, Used: 640},
		{ID: 2, Name: "Downtown Branch", Location: "Downtown", Capacity: 400, Used: 310},
		{ID: 3, Name: "Northside Storage", Location: "North Industrial Park", Capacity: 800, Used: 200},
		{ID: 4, Name: "Eastside Hub", Location: "East Harbour", Capacity: 600, Used: 590},
	}
)

// Fixture returns the built-in option list of a source
func Fixture(source domain.Source) ([]domain.Option, error) {
	switch source {
	case domain.SourceEmployees:
		options := make([]domain.Option, 0, len(fixtureEmployees))
		for _, e := range fixtureEmployees {
			options = append(options, e.Option())
		}
		return options, nil
	case domain.SourceBranches:
		options := make([]domain.Option, 0, len(fixtureBranches))
		for _, b := range fixtureBranches {
			options = append(options, b.Option())
		}
		return options, nil
	case domain.SourceStatuses:
		return statusOptions(), nil
	default:
		return nil, unknownSource(source)
	}
}

func statusOptions() []domain.Option {
	options := make([]domain.Option, 0, len(domain.AssignmentStatuses))
	for _, s := range domain.AssignmentStatuses {
		options = append(options, s.Option())
	}
	return options
}
