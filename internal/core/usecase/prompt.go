package usecase

import (
	"fmt"
	"strings"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

// Generation option set tuned for short factual output.
var defaultGenerateOptions = domain.GenerateOptions{
	Temperature:   0.4,
	TopP:          0.9,
	RepeatPenalty: 1.1,
}

const describeSystemMessage = "Kamu menulis deskripsi usaha ringkas dalam Bahasa Indonesia, nada netral, faktual. " +
	"Gunakan HANYA data yang diberikan. Dilarang menambahkan klaim, opini, atau asumsi. " +
	"JANGAN sebut koordinat. Maks 2 kalimat. Kalimat pertama WAJIB diawali dengan nama usaha persis seperti input."

// Two fixed example pairs stabilize the output style across models.
var describeFewShots = []domain.ChatMessage{
	{
		Role:    "user",
		Content: "nama=WARUNG BAKSO PAK JOYO | kategori=Restoran | lokasi=Jalan Mawar, Lowokwaru, Malang, Jawa Timur",
	},
	{
		Role:    "assistant",
		Content: "WARUNG BAKSO PAK JOYO adalah restoran yang menyajikan bakso di Jalan Mawar, Lowokwaru, Malang, Jawa Timur. Tempat ini cocok untuk santap cepat di kawasan sekitar.",
	},
	{
		Role:    "user",
		Content: "nama=TOKO MEGA JAYA | kategori=Toko Furnitur | lokasi=Jalan Sudirman, Pekanbaru, Riau",
	},
	{
		Role:    "assistant",
		Content: "TOKO MEGA JAYA adalah toko furnitur di Jalan Sudirman, Pekanbaru, Riau. Tersedia ragam perabot rumah tangga untuk kebutuhan harian.",
	},
}

// describeUserLine is deterministic: no coordinates, no free-form content.
func describeUserLine(name, category, locationNarrative string) string {
	return fmt.Sprintf("nama=%s | kategori=%s | lokasi=%s", name, category, locationNarrative)
}

func describeMessages(name, category, locationNarrative string) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(describeFewShots)+2)
	messages = append(messages, domain.ChatMessage{Role: "system", Content: describeSystemMessage})
	messages = append(messages, describeFewShots...)
	messages = append(messages, domain.ChatMessage{
		Role:    "user",
		Content: describeUserLine(name, category, locationNarrative),
	})
	return messages
}

// businessInfoPrompt embeds only the matched record's fields, with explicit
// constraints instead of post-validation.
func businessInfoPrompt(b *domain.Business) string {
	var locationParts []string
	if b.District != "" {
		locationParts = append(locationParts, "Kecamatan "+b.District)
	}
	if b.Regency != "" {
		locationParts = append(locationParts, b.Regency)
	}
	location := "alamat terlampir"
	if len(locationParts) > 0 {
		location = strings.Join(locationParts, ", ")
	}

	return fmt.Sprintf(`Buat deskripsi singkat (maksimal 2 kalimat) tentang usaha berikut.

ATURAN WAJIB:
1. Kalimat pertama HARUS diawali dengan '%s adalah...'
2. Gunakan HANYA data yang diberikan di bawah
3. Jangan menambahkan asumsi atau opini
4. Maksimal 2 kalimat

DATA USAHA:
- Nama: %s
- Kategori: %s
- Alamat: %s
- Lokasi: %s
- Status: %s

Deskripsi:`, b.Name, b.Name, b.Category, b.Address, location, b.Status)
}
