package aliasing

// canonicalByAlias maps folded (lowercase, diacritic-stripped) name variants
// to the canonical display form. Keys must already be in folded form.
// Suffixed variants like "atletico-pr" stay in the table verbatim because the
// bare stem is ambiguous across clubs.
var canonicalByAlias = map[string]string{
	// Palmeiras
	"palmeiras":                     "Palmeiras",
	"palmeiras-sp":                  "Palmeiras",
	"se palmeiras":                  "Palmeiras",
	"sociedade esportiva palmeiras": "Palmeiras",

	// Corinthians
	"corinthians":                     "Corinthians",
	"corinthians-sp":                  "Corinthians",
	"sport club corinthians paulista": "Corinthians",
	"sc corinthians paulista":         "Corinthians",

	// São Paulo
	"sao paulo":    "São Paulo",
	"sao paulo-sp": "São Paulo",
	"sao paulo fc": "São Paulo",
	"spfc":         "São Paulo",

	// Flamengo
	"flamengo":                     "Flamengo",
	"flamengo-rj":                  "Flamengo",
	"clube de regatas do flamengo": "Flamengo",
	"cr flamengo":                  "Flamengo",

	// Fluminense
	"fluminense":               "Fluminense",
	"fluminense-rj":            "Fluminense",
	"fluminense football club": "Fluminense",
	"fluminense fc":            "Fluminense",

	// Botafogo
	"botafogo":                      "Botafogo",
	"botafogo-rj":                   "Botafogo",
	"botafogo de futebol e regatas": "Botafogo",
	"botafogo fr":                   "Botafogo",

	// Vasco da Gama
	"vasco":                         "Vasco da Gama",
	"vasco-rj":                      "Vasco da Gama",
	"vasco da gama":                 "Vasco da Gama",
	"vasco da gama-rj":              "Vasco da Gama",
	"club de regatas vasco da gama": "Vasco da Gama",
	"cr vasco da gama":              "Vasco da Gama",

	// Grêmio
	"gremio":      "Grêmio",
	"gremio-rs":   "Grêmio",
	"gremio fbpa": "Grêmio",

	// Internacional
	"internacional":            "Internacional",
	"internacional-rs":         "Internacional",
	"sport club internacional": "Internacional",
	"sc internacional":         "Internacional",
	"inter":                    "Internacional",

	// Atlético Mineiro
	"atletico-mg":            "Atlético Mineiro",
	"atletico mineiro":       "Atlético Mineiro",
	"clube atletico mineiro": "Atlético Mineiro",
	"galo":                   "Atlético Mineiro",

	// Cruzeiro
	"cruzeiro":               "Cruzeiro",
	"cruzeiro-mg":            "Cruzeiro",
	"cruzeiro esporte clube": "Cruzeiro",
	"cruzeiro ec":            "Cruzeiro",

	// Santos
	"santos":               "Santos",
	"santos-sp":            "Santos",
	"santos fc":            "Santos",
	"santos futebol clube": "Santos",

	// Athletico Paranaense
	"atletico-pr":               "Atlético Paranaense",
	"atletico paranaense":       "Atlético Paranaense",
	"club athletico paranaense": "Atlético Paranaense",
	"cap":                       "Atlético Paranaense",

	// Bahia
	"bahia":               "Bahia",
	"bahia-ba":            "Bahia",
	"esporte clube bahia": "Bahia",
	"ec bahia":            "Bahia",

	// Vitória
	"vitoria":               "Vitória",
	"vitoria-ba":            "Vitória",
	"esporte clube vitoria": "Vitória",

	// Sport Recife
	"sport":                "Sport Recife",
	"sport-pe":             "Sport Recife",
	"sport club do recife": "Sport Recife",
	"sport recife":         "Sport Recife",

	// Ceará
	"ceara":               "Ceará",
	"ceara-ce":            "Ceará",
	"ceara sporting club": "Ceará",

	// Fortaleza
	"fortaleza":               "Fortaleza",
	"fortaleza-ce":            "Fortaleza",
	"fortaleza esporte clube": "Fortaleza",
	"fortaleza ec":            "Fortaleza",

	// Coritiba
	"coritiba":                "Coritiba",
	"coritiba-pr":             "Coritiba",
	"coritiba foot ball club": "Coritiba",
	"coritiba fc":             "Coritiba",

	// Avaí
	"avai":               "Avaí",
	"avai-sc":            "Avaí",
	"avai futebol clube": "Avaí",

	// Chapecoense
	"chapecoense":                       "Chapecoense",
	"chapecoense-sc":                    "Chapecoense",
	"associacao chapecoense de futebol": "Chapecoense",
	"chape":                             "Chapecoense",

	// Goiás
	"goias":               "Goiás",
	"goias-go":            "Goiás",
	"goias esporte clube": "Goiás",
}

// regionCodes holds the two-letter Brazilian state abbreviations recognised
// as a trailing "-XX" suffix on team names.
var regionCodes = map[string]struct{}{
	"SP": {}, "RJ": {}, "MG": {}, "RS": {}, "PR": {}, "SC": {}, "BA": {},
	"PE": {}, "CE": {}, "GO": {}, "DF": {}, "ES": {}, "AM": {}, "PA": {},
	"MT": {}, "MS": {}, "AL": {}, "SE": {}, "RN": {}, "PB": {}, "PI": {},
	"MA": {}, "TO": {}, "RO": {}, "AC": {}, "RR": {}, "AP": {},
}
