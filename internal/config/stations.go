package config

// Stations maps the form value of each station to its display name.
var Stations = map[string]string{
	"1":  "南港",
	"2":  "台北",
	"3":  "板橋",
	"4":  "桃園",
	"5":  "新竹",
	"6":  "苗栗",
	"7":  "台中",
	"8":  "彰化",
	"9":  "雲林",
	"10": "嘉義",
	"11": "台南",
	"12": "左營",
}

// StationName returns the display name for code, or code itself when unknown.
func StationName(code string) string {
	if name, ok := Stations[code]; ok {
		return name
	}
	return code
}

// TimeValues maps a display departure time to the value the time selector expects.
var TimeValues = map[string]string{
	"00:00": "1201A", "00:30": "1230A",
	"01:00": "100A", "01:30": "130A",
	"02:00": "200A", "02:30": "230A",
	"03:00": "300A", "03:30": "330A",
	"04:00": "400A", "04:30": "430A",
	"05:00": "500A", "05:30": "530A",
	"06:00": "600A", "06:30": "630A",
	"07:00": "700A", "07:30": "730A",
	"08:00": "800A", "08:30": "830A",
	"09:00": "900A", "09:30": "930A",
	"10:00": "1000A", "10:30": "1030A",
	"11:00": "1100A", "11:30": "1130A",
	"12:00": "1200N", "12:30": "1230P",
	"13:00": "100P", "13:30": "130P",
	"14:00": "200P", "14:30": "230P",
	"15:00": "300P", "15:30": "330P",
	"16:00": "400P", "16:30": "430P",
	"17:00": "500P", "17:30": "530P",
	"18:00": "600P", "18:30": "630P",
	"19:00": "700P", "19:30": "730P",
	"20:00": "800P", "20:30": "830P",
	"21:00": "900P", "21:30": "930P",
	"22:00": "1000P", "22:30": "1030P",
	"23:00": "1100P", "23:30": "1130P",
}

// TimeCode maps a display time to its form value. Unknown values pass through
// unchanged so a raw form value can be configured directly.
func TimeCode(display string) string {
	if code, ok := TimeValues[display]; ok {
		return code
	}
	return display
}
