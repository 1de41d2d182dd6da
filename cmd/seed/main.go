package main

import (
	"fmt"

	"vocabpool/internal/config"
	"vocabpool/internal/database"
	"vocabpool/internal/logging"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var log = logging.Named("seed")

type seedWord struct {
	headword    string
	translation string
	example     string
	level       int
	category    string
}

// sampleCatalog seeds a handful of words per language across levels 1-3 so
// Learn/Practice/Review and the placement quiz all have something to draw
// from in a fresh environment.
var sampleCatalog = map[string][]seedWord{
	"es": {
		{"hola", "hello", "¡Hola! ¿Cómo estás?", 1, "greetings"},
		{"gracias", "thank you", "Gracias por tu ayuda.", 1, "greetings"},
		{"adiós", "goodbye", "¡Adiós, hasta mañana!", 1, "greetings"},
		{"amigo", "friend", "Él es mi mejor amigo.", 1, "people"},
		{"familia", "family", "Tengo una familia grande.", 1, "people"},
		{"escuela", "school", "Voy a la escuela todos los días.", 1, "places"},
		{"trabajo", "work", "Mi trabajo es interesante.", 2, "work"},
		{"tiempo", "time", "No tengo mucho tiempo.", 2, "abstract"},
		{"ciudad", "city", "Madrid es una ciudad grande.", 2, "places"},
		{"aprender", "to learn", "Quiero aprender español.", 3, "verbs"},
	},
	"fr": {
		{"bonjour", "hello", "Bonjour, comment ça va?", 1, "greetings"},
		{"merci", "thank you", "Merci beaucoup pour votre aide.", 1, "greetings"},
		{"au revoir", "goodbye", "Au revoir, à demain!", 1, "greetings"},
		{"ami", "friend", "C'est mon meilleur ami.", 1, "people"},
		{"famille", "family", "J'ai une grande famille.", 1, "people"},
		{"école", "school", "Je vais à l'école tous les jours.", 1, "places"},
		{"travail", "work", "Mon travail est intéressant.", 2, "work"},
		{"temps", "time", "Je n'ai pas beaucoup de temps.", 2, "abstract"},
		{"ville", "city", "Paris est une grande ville.", 2, "places"},
		{"apprendre", "to learn", "Je veux apprendre le français.", 3, "verbs"},
	},
	"de": {
		{"hallo", "hello", "Hallo, wie geht's dir?", 1, "greetings"},
		{"danke", "thank you", "Danke für deine Hilfe.", 1, "greetings"},
		{"tschüss", "goodbye", "Tschüss, bis morgen!", 1, "greetings"},
		{"freund", "friend", "Er ist mein bester Freund.", 1, "people"},
		{"familie", "family", "Ich habe eine große Familie.", 1, "people"},
		{"schule", "school", "Ich gehe jeden Tag zur Schule.", 1, "places"},
		{"arbeit", "work", "Meine Arbeit ist interessant.", 2, "work"},
		{"zeit", "time", "Ich habe nicht viel Zeit.", 2, "abstract"},
		{"stadt", "city", "Berlin ist eine große Stadt.", 2, "places"},
		{"lernen", "to learn", "Ich will Deutsch lernen.", 3, "verbs"},
	},
	"zh": {
		{"你好", "hello", "你好！很高兴认识你。", 1, "greetings"},
		{"谢谢", "thank you", "谢谢你的帮助。", 1, "greetings"},
		{"再见", "goodbye", "明天再见！", 1, "greetings"},
		{"朋友", "friend", "他是我的好朋友。", 1, "people"},
		{"家庭", "family", "我有一个幸福的家庭。", 1, "people"},
		{"学校", "school", "我的学校很大。", 1, "places"},
		{"工作", "work", "我每天工作八小时。", 2, "work"},
		{"时间", "time", "现在几点了？", 2, "abstract"},
		{"城市", "city", "北京是一个大城市。", 2, "places"},
		{"学习", "to study", "我在学习中文。", 3, "verbs"},
	},
	"ja": {
		{"こんにちは", "hello", "こんにちは、元気ですか？", 1, "greetings"},
		{"ありがとう", "thank you", "助けてくれてありがとう。", 1, "greetings"},
		{"さようなら", "goodbye", "さようなら、また明日。", 1, "greetings"},
		{"友達", "friend", "彼は私の親友です。", 1, "people"},
		{"家族", "family", "私には大きな家族がいます。", 1, "people"},
		{"学校", "school", "毎日学校に行きます。", 1, "places"},
		{"仕事", "work", "私の仕事は面白いです。", 2, "work"},
		{"時間", "time", "あまり時間がありません。", 2, "abstract"},
		{"都市", "city", "東京は大きな都市です。", 2, "places"},
		{"勉強する", "to study", "日本語を勉強したいです。", 3, "verbs"},
	},
}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	fmt.Println("seeding word catalog...")

	for language, words := range sampleCatalog {
		for _, w := range words {
			_, err := db.Exec(`
				INSERT INTO words (id, language, headword, translation, example_sentence, level, category)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT DO NOTHING
			`, uuid.New(), language, w.headword, w.translation, w.example, w.level, w.category)

			if err != nil {
				log.Warn().Err(err).Str("language", language).Str("headword", w.headword).Msg("failed to insert word")
				continue
			}
			fmt.Printf("added: %s (%s) - %s [level %d]\n", w.headword, language, w.translation, w.level)
		}
	}

	fmt.Println("catalog seeding completed")
}
