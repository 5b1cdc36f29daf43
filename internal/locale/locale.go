// Package locale holds the UI dictionaries for the languages the planner
// front end offers.
package locale

import (
	"strings"
	"time"
)

const Default = "en"

type Labels struct {
	Lang            string `json:"lang"`
	Title           string `json:"title"`
	StartCity       string `json:"start_city"`
	StartButton     string `json:"start_btn"`
	ResetButton     string `json:"reset_btn"`
	NextCity        string `json:"next_city"`
	AddButton       string `json:"add_btn"`
	CurrentRoute    string `json:"current_route"`
	TotalDistance   string `json:"total_distance"`
	TotalTime       string `json:"total_time"`
	VenuesDates     string `json:"venues_dates"`
	PerformanceDate string `json:"performance_date"`
	VenueName       string `json:"venue_name"`
	Seats           string `json:"seats"`
	GoogleLink      string `json:"google_link"`
	Register        string `json:"register"`
	OpenMaps        string `json:"open_maps"`
	Save            string `json:"save"`
	Delete          string `json:"delete"`
	TourMap         string `json:"tour_map"`

	// Go reference layout for performance dates.
	DateLayout string `json:"-"`
}

var dictionaries = map[string]Labels{
	"en": {
		Lang:            "en",
		Title:           "Cantata Tour (Maharashtra)",
		StartCity:       "Starting City",
		StartButton:     "Start",
		ResetButton:     "Reset All",
		NextCity:        "Next City",
		AddButton:       "Add",
		CurrentRoute:    "Current Route",
		TotalDistance:   "Total Distance",
		TotalTime:       "Total Time",
		VenuesDates:     "Venues & Dates",
		PerformanceDate: "Performance Date",
		VenueName:       "Venue Name",
		Seats:           "Seats",
		GoogleLink:      "Google Maps Link",
		Register:        "Register",
		OpenMaps:        "Open in Google Maps",
		Save:            "Save",
		Delete:          "Delete",
		TourMap:         "Tour Map",
		DateLayout:      "Jan 02, 2006",
	},
	"ko": {
		Lang:            "ko",
		Title:           "칸타타 투어 (마하라슈트라)",
		StartCity:       "출발 도시",
		StartButton:     "시작",
		ResetButton:     "전체 초기화",
		NextCity:        "다음 도시",
		AddButton:       "추가",
		CurrentRoute:    "현재 경로",
		TotalDistance:   "총 거리",
		TotalTime:       "총 소요시간",
		VenuesDates:     "공연장 & 날짜",
		PerformanceDate: "공연 날짜",
		VenueName:       "공연장 이름",
		Seats:           "좌석 수",
		GoogleLink:      "구글 지도 링크",
		Register:        "등록",
		OpenMaps:        "구글 지도 열기",
		Save:            "저장",
		Delete:          "삭제",
		TourMap:         "투어 지도",
		DateLayout:      "2006년 01월 02일",
	},
	"hi": {
		Lang:            "hi",
		Title:           "कांताता टूर (महाराष्ट्र)",
		StartCity:       "प्रारंभिक शहर",
		StartButton:     "शुरू करें",
		ResetButton:     "सब रीसेट करें",
		NextCity:        "अगला शहर",
		AddButton:       "जोड़ें",
		CurrentRoute:    "वर्तमान मार्ग",
		TotalDistance:   "कुल दूरी",
		TotalTime:       "कुल समय",
		VenuesDates:     "स्थल और तिथियाँ",
		PerformanceDate: "प्रदर्शन तिथि",
		VenueName:       "स्थल का नाम",
		Seats:           "सीटें",
		GoogleLink:      "गूगल मैप्स लिंक",
		Register:        "रजिस्टर",
		OpenMaps:        "गूगल मैप्स में खोलें",
		Save:            "सहेजें",
		Delete:          "हटाएँ",
		TourMap:         "टूर मैप",
		DateLayout:      "02 Jan 2006",
	},
}

// For returns the dictionary for lang, falling back to English.
func For(lang string) Labels {
	if l, ok := dictionaries[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return l
	}
	return dictionaries[Default]
}

func Supported() []string { return []string{"en", "ko", "hi"} }

func (l Labels) FormatDate(t time.Time) string { return t.Format(l.DateLayout) }
