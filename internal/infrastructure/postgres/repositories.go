package postgres

import "github.com/jhoicas/Botiquin-api/internal/application/inventory"

// NewStatusRepositories agrupa los adaptadores de lectura sobre el mismo Querier.
func NewStatusRepositories(q Querier) inventory.Repositories {
	return inventory.Repositories{
		Allowances:   NewAllowanceRepository(q),
		ReqQtys:      NewReqQtyRepository(q),
		Molecules:    NewMoleculeRepository(q),
		Equipments:   NewEquipmentRepository(q),
		Items:        NewItemRepository(q),
		Transactions: NewQtyTransactionRepository(q),
		Locations:    NewLocationRepository(q),
		Containers:   NewContainerRepository(q),
		Vessel:       NewVesselRepository(q),
	}
}
