package game

// Phrase is on-screen text with a romaji form for fonts without Japanese glyphs.
type Phrase struct {
	Native string
	Romaji string
}

// Text picks the form the active font can draw.
func (p Phrase) Text(localized bool) string {
	if localized {
		return p.Native
	}
	return p.Romaji
}

var (
	PhraseDarumaSanGa = Phrase{Native: "だるまさんが", Romaji: "Daruma-san ga..."}
	PhraseKoronda     = Phrase{Native: "転んだ！", Romaji: "koronda!"}

	BannerWin     = Phrase{Native: "ゴール！あなたの勝ちです！", Romaji: "Goal! You win!"}
	BannerLose    = Phrase{Native: "動いているところを見られました！あなたの負けです！", Romaji: "You were seen moving! You lose!"}
	BannerRestart = Phrase{Native: "Rキーでリスタート", Romaji: "Press R to restart"}
)
