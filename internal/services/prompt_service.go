package services

import (
	"fmt"
	"strings"

	"jelajah/internal/models/request_models"
)

const (
	PromptLanguageIndonesian = "id"
	PromptLanguageEnglish    = "en"
)

// Example payload quoted in every prompt. Keys must match the decoder.
const itinerarySchemaExample = `[
  {
    "day": 1,
    "theme": "%s",
    "activities": [
      {
        "name": "%s",
        "hours": "%s",
        "cost": "%s",
        "description": "%s"
      }
    ]
  }
]`

const promptTemplateID = `
Bertindaklah sebagai ahli travel planner profesional. Buatlah rencana perjalanan (itinerary) harian yang detail dan realistis untuk:

Tujuan: %s
Lama: %d hari
Minat: %s

INSTRUKSI PENTING:
1. Gunakan Google Search untuk mendapatkan informasi jam buka dan harga tiket TERBARU dan AKURAT.
2. Estimasi biaya harus dalam mata uang lokal tempat tujuan.
3. Output harus dalam Bahasa Indonesia yang menarik.
4. Buat tepat %d objek hari, dengan "day" berurutan mulai dari 1.
5. Output JSON harus dibungkus dalam code block ` + "```json ... ```" + `.

Format JSON yang diharapkan adalah array objek seperti ini:
%s
`

const promptTemplateEN = `
Act as a professional travel planner. Create a detailed, realistic day-by-day itinerary for:

Destination: %s
Duration: %d days
Interests: %s

IMPORTANT INSTRUCTIONS:
1. Use web search to get CURRENT and ACCURATE opening hours and ticket prices.
2. Cost estimates must be in the destination's local currency.
3. Write the output in engaging English.
4. Produce exactly %d day objects, with "day" numbered consecutively from 1.
5. Wrap the JSON output in a ` + "```json ... ```" + ` code block.

The expected JSON format is an array of objects like this:
%s
`

// BuildItineraryPrompt renders the instruction sent to the completion
// service. Unknown languages fall back to Indonesian.
func BuildItineraryPrompt(req request_models.TravelRequest, language string) string {
	destination := strings.TrimSpace(req.Destination)
	interests := strings.TrimSpace(req.Interests)

	switch strings.ToLower(language) {
	case PromptLanguageEnglish:
		schema := fmt.Sprintf(itinerarySchemaExample,
			"Title/theme of the day (e.g. Exploring the Old Town)",
			"Place or activity name",
			"Opening - closing time (e.g. 09:00 - 17:00)",
			"Estimated cost (e.g. ¥500 / Free)",
			"Short description of the activity (max 2 sentences)")
		return fmt.Sprintf(promptTemplateEN, destination, req.Duration, interests, req.Duration, schema)
	default:
		schema := fmt.Sprintf(itinerarySchemaExample,
			"Judul/Tema Hari Ini (Contoh: Menjelajahi Kota Tua)",
			"Nama Tempat/Aktivitas",
			"Jam Buka - Tutup (Contoh: 09:00 - 17:00)",
			"Estimasi Biaya (Contoh: ¥500 / Gratis)",
			"Deskripsi singkat aktivitas (maks 2 kalimat)")
		return fmt.Sprintf(promptTemplateID, destination, req.Duration, interests, req.Duration, schema)
	}
}
