package domain

// ActiveUsersPoint representa a quantidade de usuários únicos em um período (dia, semana ou mês)
type ActiveUsersPoint struct {
	Period string `json:"period"`
	Users  int    `json:"users"`
}

// DeviceUsage representa o uso por categoria de dispositivo
type DeviceUsage struct {
	Device   Device `json:"device"`
	Sessions int    `json:"sessions"`
	Users    int    `json:"users"`
}

type ActivityReport struct {
	DAU       *float64           `json:"dau"`
	WAU       *float64           `json:"wau"`
	MAU       *float64           `json:"mau"`
	StickyWAU *float64           `json:"sticky_wau"`
	StickyMAU *float64           `json:"sticky_mau"`
	Daily     []ActiveUsersPoint `json:"daily"`
	Weekly    []ActiveUsersPoint `json:"weekly"`
	Monthly   []ActiveUsersPoint `json:"monthly"`
	Devices   []DeviceUsage      `json:"devices"`
}
