package models

const (
	VehicleLogistics     = "Логистика"
	VehicleLightArmored  = "Легкобронированная техника"
	VehicleLightTanks    = "Легкие танки"
	VehicleMediumTanks   = "Средние танки"
	VehicleHeavyTanks    = "Тяжелые танки"
	VehicleScoutPlanes   = "Разведывательные самолеты"
	VehicleSmallAircraft = "Малая авиация"
	VehicleLargeAircraft = "Крупная авиация"
	VehicleSmallNaval    = "Малый флот"
	VehicleLargeNaval    = "Крупный флот"
)

type Vehicle struct {
	Name   string
	Weight int
}

// Vehicles is the closed list of categories in display order.
var Vehicles = []Vehicle{
	{Name: VehicleLogistics, Weight: 1},
	{Name: VehicleLightArmored, Weight: 2},
	{Name: VehicleLightTanks, Weight: 3},
	{Name: VehicleMediumTanks, Weight: 5},
	{Name: VehicleHeavyTanks, Weight: 8},
	{Name: VehicleScoutPlanes, Weight: 3},
	{Name: VehicleSmallAircraft, Weight: 5},
	{Name: VehicleLargeAircraft, Weight: 8},
	{Name: VehicleSmallNaval, Weight: 4},
	{Name: VehicleLargeNaval, Weight: 10},
}

var vehicleWeights = func() map[string]int {
	m := make(map[string]int, len(Vehicles))
	for _, v := range Vehicles {
		m[v.Name] = v.Weight
	}
	return m
}()

func VehicleWeight(name string) (int, bool) {
	w, ok := vehicleWeights[name]
	return w, ok
}
