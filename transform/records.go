package transform

// Input records bound by csv tag to the raw dataset headers. Columns not
// listed here are ignored.

// CovidCaseRecord is one row of the ministry covid cases dataset.
type CovidCaseRecord struct {
	Date        string `csv:"datum"`
	DistrictLAU string `csv:"okres_lau_kod"`
	TotalCases  string `csv:"kumulativni_pocet_nakazenych"`
	TotalCured  string `csv:"kumulativni_pocet_vylecenych"`
	TotalDeaths string `csv:"kumulativni_pocet_umrti"`
}

// StationRecord is one row of the vaccination stations dataset.
type StationRecord struct {
	StationCode       string `csv:"ockovaci_misto_id"`
	StationName       string `csv:"ockovaci_misto_nazev"`
	StationAddress    string `csv:"ockovaci_misto_adresa"`
	OperationalStatus string `csv:"operacni_status"`
	MinimalCapacity   string `csv:"minimalni_kapacita"`
	Accessibility     string `csv:"bezbarierovy_pristup"`
	DistrictCode      string `csv:"okres_nuts_kod"`
}

// UsageRecord is one row of the vaccine usage dataset.
type UsageRecord struct {
	Date              string `csv:"datum"`
	StationCode       string `csv:"ockovaci_misto_kod"`
	Manufacturer      string `csv:"vyrobce"`
	UsedAmpules       string `csv:"pouzite_ampulky"`
	SpoiledAmpules    string `csv:"znehodnocene_ampulky"`
	AdministeredDoses string `csv:"pouzite_davky"`
	InvalidDoses      string `csv:"znehodnocene_davky"`
}
