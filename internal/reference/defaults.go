package reference

// Built-in snapshots of the reference datasets, used when no CSV paths
// are configured. Kept deliberately small; production deployments ship
// the full tables as files.

var defaultInjuries = map[string]string{
	"Josh Allen":      StatusQuestionable,
	"Lamar Jackson":   StatusOut,
	"Patrick Mahomes": StatusProbable,
	"Jalen Hurts":     StatusQuestionable,
	"C.J. Stroud":     StatusIR,
	"Deebo Samuel":    StatusQuestionable,
	"T.J. Hockenson":  StatusIR,
	"Mark Andrews":    StatusIR,
}

var defaultSOS = map[string]int{
	"BAL_QB": 8,
	"BUF_QB": 6,
	"KC_QB":  6,
	"MIA_QB": 6,
	"PHI_QB": 6,
	"SF_QB":  6,
	"DET_QB": 6,
	"CIN_QB": 12,
	"DEN_QB": 14,
	"LV_QB":  14,
	"NE_QB":  14,
	"WAS_QB": 14,
	"CAR_QB": 14,
	"NYG_QB": 14,

	"BAL_RB": 12,
	"BUF_RB": 14,
	"KC_RB":  12,
	"MIA_RB": 12,
	"SF_RB":  12,
	"DET_RB": 12,
	"CIN_RB": 16,
	"DEN_RB": 20,
	"LV_RB":  20,
	"NE_RB":  20,
	"WAS_RB": 20,
	"CAR_RB": 20,
	"NYG_RB": 20,

	"BAL_WR": 15,
	"BUF_WR": 18,
	"KC_WR":  16,
	"MIA_WR": 16,
	"SF_WR":  16,
	"DET_WR": 16,
	"CIN_WR": 20,
	"DEN_WR": 24,
	"LV_WR":  24,
	"NE_WR":  24,
	"WAS_WR": 24,
	"CAR_WR": 24,
	"NYG_WR": 24,

	"BAL_TE": 10,
	"BUF_TE": 8,
	"KC_TE":  8,
	"MIA_TE": 8,
	"SF_TE":  8,
	"DET_TE": 8,
	"CIN_TE": 12,
	"DEN_TE": 16,
	"LV_TE":  16,
	"NE_TE":  16,
	"WAS_TE": 16,
	"CAR_TE": 16,
	"NYG_TE": 16,
}
