package mission

// Active is the mission currently running on the main page.
type Active struct {
	Title       string
	Description string
	PrizeLabel  string
}

// HistoryEntry is one concluded mission shown on the history page.
type HistoryEntry struct {
	Date     string
	Mission  string
	Winner   string
	ImageRef string
}

// TodayMission returns the mission featured on the main card.
func TodayMission() Active {
	return Active{
		Title:       "가장 좋아하는 지구의 하늘 사진을 공유해주세요!",
		Description: "푸리가 지구의 다채로운 하늘을 보고 싶어해요. 여러분이 가장 아끼는 하늘 사진으로 푸리에게 지구의 아름다움을 알려주세요.",
		PrizeLabel:  "1,000,000 KRW",
	}
}

// DefaultSchedule returns the upcoming missions the session starts with.
func DefaultSchedule() []Mission {
	return []Mission{
		{Date: "2025-08-29", Content: "\"당신이 가장 좋아하는 책의 한 구절을 공유해주세요.\"", Prize: 500000},
		{Date: "2025-08-30", Content: "\"가장 평화로운 순간을 담은 사진을 보여주세요.\"", Prize: 700000},
		{Date: "2025-08-31", Content: "\"지구의 밤하늘에서 가장 밝게 빛나는 별은 무엇인가요?\"", Prize: 1200000},
		{Date: "2025-09-01", Content: "\"당신의 도시에서 가장 아름다운 건물을 소개해주세요.\"", Prize: 800000},
		{Date: "2025-09-02", Content: "\"웃음을 주는 짧은 동영상을 만들어주세요.\"", Prize: 1500000},
		{Date: "2025-09-03", Content: "\"지구인들이 즐겨 듣는 음악을 푸리에게 추천해주세요.\"", Prize: 600000},
	}
}

// DefaultHistory returns the concluded missions shown on the history page.
func DefaultHistory() []HistoryEntry {
	return []HistoryEntry{
		{Date: "2025-08-27", Mission: "\"가장 편안함을 느끼는 장소를 보여줘!\"", Winner: "CozyHome", ImageRef: "cozy-room"},
		{Date: "2025-08-26", Mission: "\"지구에서 가장 맛있는 음식을 알려줘!\"", Winner: "FoodieMaster", ImageRef: "pizza"},
		{Date: "2025-08-25", Mission: "\"당신의 반려동물을 자랑해줘!\"", Winner: "CatLover", ImageRef: "cute-cat"},
	}
}
