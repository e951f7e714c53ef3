package metro

// Lisbon returns the Lisbon Metro reference network. Each call returns a
// fresh copy so callers may not alias each other's slices.
func Lisbon() Network {
	return Network{Stations: lisbonStations(), Lines: lisbonLines()}
}

func lisbonLines() []Line {
	return []Line{
		{
			Name:  "Azul",
			Color: "#0075BF",
			// SS sits between PE and PA on the real line.
			Stations: []string{
				"RB", "AS", "AF", "PO", "CA", "CM", "AH", "LA", "JZ", "PE", "SS",
				"PA", "MP", "AV", "RE", "BC", "TP", "SP",
			},
			Directions: map[string]int{"RB": -1, "SP": 1},
		},
		{
			Name:  "Amarela",
			Color: "#FFD800",
			Stations: []string{
				"OD", "SR", "AX", "LU", "QC", "CG", "CU", "EC", "CP", "SA", "PI", "MP", "RA",
			},
			Directions: map[string]int{"OD": -1, "RA": 1},
		},
		{
			Name:  "Verde",
			Color: "#00A9A6",
			Stations: []string{
				"TE", "CG", "AL", "RM", "AE", "AM", "AR", "AN", "IN", "MM", "RO", "BC", "CS",
			},
			Directions: map[string]int{"TE": -1, "CS": 1},
		},
		{
			Name:  "Vermelha",
			Color: "#ED1C24",
			Stations: []string{
				"AP", "EN", "MO", "OR", "CR", "OS", "CH", "BV", "OL", "AM", "SA", "SS",
			},
			Directions: map[string]int{"AP": -1, "SS": 1},
		},
	}
}

func lisbonStations() []Station {
	return []Station{
		{ID: "AE", Name: "Areeiro", Coordinates: Coordinates{Lon: -9.13381, Lat: 38.7426}, Lines: []string{"Verde"}},
		{ID: "AF", Name: "Alfornelos", Coordinates: Coordinates{Lon: -9.20471, Lat: 38.7606}, Lines: []string{"Azul"}},
		{ID: "AH", Name: "Alto dos Moinhos", Coordinates: Coordinates{Lon: -9.17995, Lat: 38.7496}, Lines: []string{"Azul"}},
		{ID: "AL", Name: "Alvalade", Coordinates: Coordinates{Lon: -9.14388, Lat: 38.7535}, Lines: []string{"Verde"}},
		{ID: "AM", Name: "Alameda", Coordinates: Coordinates{Lon: -9.13409, Lat: 38.7373}, Lines: []string{"Verde", "Vermelha"}},
		{ID: "AN", Name: "Anjos", Coordinates: Coordinates{Lon: -9.13503, Lat: 38.7266}, Lines: []string{"Verde"}},
		{ID: "AP", Name: "Aeroporto", Coordinates: Coordinates{Lon: -9.12833, Lat: 38.7686}, Lines: []string{"Vermelha"}, Terminal: true},
		{ID: "AR", Name: "Arroios", Coordinates: Coordinates{Lon: -9.13445, Lat: 38.7335}, Lines: []string{"Verde"}},
		{ID: "AS", Name: "Amadora Este", Coordinates: Coordinates{Lon: -9.21917, Lat: 38.7584}, Lines: []string{"Azul"}},
		{ID: "AV", Name: "Avenida", Coordinates: Coordinates{Lon: -9.14582, Lat: 38.7201}, Lines: []string{"Azul"}},
		{ID: "AX", Name: "Ameixoeira", Coordinates: Coordinates{Lon: -9.15999, Lat: 38.7799}, Lines: []string{"Amarela"}},
		{ID: "BC", Name: "Baixa/Chiado", Coordinates: Coordinates{Lon: -9.13909, Lat: 38.7107}, Lines: []string{"Azul", "Verde"}},
		{ID: "BV", Name: "Bela Vista", Coordinates: Coordinates{Lon: -9.11855, Lat: 38.7477}, Lines: []string{"Vermelha"}},
		{ID: "CA", Name: "Carnide", Coordinates: Coordinates{Lon: -9.19281, Lat: 38.7593}, Lines: []string{"Azul"}},
		{ID: "CG", Name: "Campo Grande", Coordinates: Coordinates{Lon: -9.15794, Lat: 38.7599}, Lines: []string{"Amarela", "Verde"}},
		{ID: "CH", Name: "Chelas", Coordinates: Coordinates{Lon: -9.11414, Lat: 38.7553}, Lines: []string{"Vermelha"}},
		{ID: "CM", Name: "Colégio Militar/Luz", Coordinates: Coordinates{Lon: -9.18866, Lat: 38.7533}, Lines: []string{"Azul"}},
		{ID: "CP", Name: "Campo Pequeno", Coordinates: Coordinates{Lon: -9.14703, Lat: 38.7414}, Lines: []string{"Amarela"}},
		{ID: "CR", Name: "Cabo Ruivo", Coordinates: Coordinates{Lon: -9.10409, Lat: 38.7632}, Lines: []string{"Vermelha"}},
		{ID: "CS", Name: "Cais do Sodré", Coordinates: Coordinates{Lon: -9.14503, Lat: 38.7062}, Lines: []string{"Verde"}, Terminal: true},
		{ID: "CU", Name: "Cidade Universitária", Coordinates: Coordinates{Lon: -9.15863, Lat: 38.7519}, Lines: []string{"Amarela"}},
		{ID: "EC", Name: "Entre Campos", Coordinates: Coordinates{Lon: -9.14856, Lat: 38.7479}, Lines: []string{"Amarela"}},
		{ID: "EN", Name: "Encarnação", Coordinates: Coordinates{Lon: -9.11498, Lat: 38.775}, Lines: []string{"Vermelha"}},
		{ID: "IN", Name: "Intendente", Coordinates: Coordinates{Lon: -9.13531, Lat: 38.7222}, Lines: []string{"Verde"}},
		{ID: "JZ", Name: "Jardim Zoológico", Coordinates: Coordinates{Lon: -9.16872, Lat: 38.7422}, Lines: []string{"Azul"}},
		{ID: "LA", Name: "Laranjeiras", Coordinates: Coordinates{Lon: -9.17243, Lat: 38.7485}, Lines: []string{"Azul"}},
		{ID: "LU", Name: "Lumiar", Coordinates: Coordinates{Lon: -9.1597, Lat: 38.7728}, Lines: []string{"Amarela"}},
		{ID: "MM", Name: "Martim Moniz", Coordinates: Coordinates{Lon: -9.13575, Lat: 38.7168}, Lines: []string{"Verde"}},
		{ID: "MO", Name: "Moscavide", Coordinates: Coordinates{Lon: -9.10266, Lat: 38.7748}, Lines: []string{"Vermelha"}},
		{ID: "MP", Name: "Marquês de Pombal", Coordinates: Coordinates{Lon: -9.15081, Lat: 38.7249}, Lines: []string{"Amarela", "Azul"}},
		{ID: "OD", Name: "Odivelas", Coordinates: Coordinates{Lon: -9.17322, Lat: 38.7932}, Lines: []string{"Amarela"}, Terminal: true},
		{ID: "OL", Name: "Olaias", Coordinates: Coordinates{Lon: -9.12366, Lat: 38.7392}, Lines: []string{"Vermelha"}},
		{ID: "OR", Name: "Oriente", Coordinates: Coordinates{Lon: -9.09977, Lat: 38.7678}, Lines: []string{"Vermelha"}},
		{ID: "OS", Name: "Olivais", Coordinates: Coordinates{Lon: -9.11204, Lat: 38.7613}, Lines: []string{"Vermelha"}},
		{ID: "PA", Name: "Parque", Coordinates: Coordinates{Lon: -9.15028, Lat: 38.7297}, Lines: []string{"Azul"}},
		{ID: "PE", Name: "Praça de Espanha", Coordinates: Coordinates{Lon: -9.15845, Lat: 38.7377}, Lines: []string{"Azul"}},
		{ID: "PI", Name: "Picoas", Coordinates: Coordinates{Lon: -9.1465, Lat: 38.7306}, Lines: []string{"Amarela"}},
		{ID: "PO", Name: "Pontinha", Coordinates: Coordinates{Lon: -9.19693, Lat: 38.7624}, Lines: []string{"Azul"}},
		{ID: "QC", Name: "Quinta das Conchas", Coordinates: Coordinates{Lon: -9.15546, Lat: 38.7671}, Lines: []string{"Amarela"}},
		{ID: "RA", Name: "Rato", Coordinates: Coordinates{Lon: -9.15411, Lat: 38.7201}, Lines: []string{"Amarela"}, Terminal: true},
		{ID: "RB", Name: "Reboleira", Coordinates: Coordinates{Lon: -9.22414, Lat: 38.7522}, Lines: []string{"Azul"}, Terminal: true},
		{ID: "RE", Name: "Restauradores", Coordinates: Coordinates{Lon: -9.14162, Lat: 38.7151}, Lines: []string{"Azul"}},
		{ID: "RM", Name: "Roma", Coordinates: Coordinates{Lon: -9.14135, Lat: 38.7485}, Lines: []string{"Verde"}},
		{ID: "RO", Name: "Rossio", Coordinates: Coordinates{Lon: -9.13896, Lat: 38.7138}, Lines: []string{"Verde"}},
		{ID: "SA", Name: "Saldanha", Coordinates: Coordinates{Lon: -9.14558, Lat: 38.7353}, Lines: []string{"Amarela", "Vermelha"}},
		{ID: "SP", Name: "Santa Apolónia", Coordinates: Coordinates{Lon: -9.12256, Lat: 38.7138}, Lines: []string{"Azul"}, Terminal: true},
		{ID: "SR", Name: "Senhor Roubado", Coordinates: Coordinates{Lon: -9.17215, Lat: 38.7858}, Lines: []string{"Amarela"}},
		{ID: "SS", Name: "São Sebastião", Coordinates: Coordinates{Lon: -9.15423, Lat: 38.7348}, Lines: []string{"Azul", "Vermelha"}, Terminal: true},
		{ID: "TE", Name: "Telheiras", Coordinates: Coordinates{Lon: -9.16606, Lat: 38.7604}, Lines: []string{"Verde"}, Terminal: true},
		{ID: "TP", Name: "Terreiro do Paço", Coordinates: Coordinates{Lon: -9.13335, Lat: 38.7072}, Lines: []string{"Azul"}},
	}
}
