package messages

import "github.com/smsmy/farm-notifier/internal/schedule"

// treeNamesAR maps tree keys to their Arabic display names.
var treeNamesAR = map[string]string{
	"henna":           "الحناء",
	"fig":             "التين",
	"banana":          "الموز",
	"mango_small":     "مانجو صغيرة",
	"mango_large":     "مانجو كبيرة",
	"jackfruit_young": "جاك فروت صغير",
	"mint_basil":      "النعناع والحبق",
	"pomegranate":     "الرمان",
	"acacia":          "الأكاسيا",
	"bougainvillea":   "الجهنمية",
	"grape":           "العنب",
	"custard_apple":   "القشطة",
	"ornamental":      "أشجار الزينة",
	"moringa":         "المورينجا",
}

// treeNamesBN maps tree keys to their Bengali display names.
var treeNamesBN = map[string]string{
	"henna":           "মেহেদি",
	"fig":             "ডুমুর",
	"banana":          "কলা",
	"mango_small":     "ছোট আম",
	"mango_large":     "বড় আম",
	"jackfruit_young": "ছোট কাঁঠাল",
	"mint_basil":      "পুদিনা ও তুলসী",
	"pomegranate":     "ডালিম",
	"acacia":          "বাবলা",
	"bougainvillea":   "বাগানবিলাস",
	"grape":           "আঙ্গুর",
	"custard_apple":   "আতা",
	"ornamental":      "শোভাবর্ধনকারী গাছ",
	"moringa":         "সজনে",
}

// TreeNameAR returns the Arabic display name for a tree key, falling
// back to the key itself for unknown trees.
func TreeNameAR(key string) string {
	if name, ok := treeNamesAR[key]; ok {
		return name
	}
	return key
}

// TreeNameBN returns the Bengali display name for a tree key.
func TreeNameBN(key string) string {
	if name, ok := treeNamesBN[key]; ok {
		return name
	}
	return key
}

var pipeTaskNamesAR = map[schedule.PipeTask]string{
	schedule.PipeChangeWater: "تغيير الماء",
	schedule.PipeRinse:       "شطف",
	schedule.PipeSanitize:    "تعقيم",
	schedule.PipeDeepClean:   "تنظيف عميق",
}

var pipeTaskNamesBN = map[schedule.PipeTask]string{
	schedule.PipeChangeWater: "পানি পরিবর্তন",
	schedule.PipeRinse:       "ধোয়া",
	schedule.PipeSanitize:    "জীবাণুমুক্তকরণ",
	schedule.PipeDeepClean:   "গভীর পরিষ্কার",
}

var reasonsAR = map[schedule.Reason]string{
	schedule.ReasonHeatWave:      "موجة حر",
	schedule.ReasonColdWave:      "موجة برد",
	schedule.ReasonPostDeworming: "دعم بعد دواء الديدان",
	schedule.ReasonFeedChange:    "تغيير نوع الغذاء",
	schedule.ReasonPreventive:    "دعم وقائي",
	schedule.ReasonHighHumidity:  "رطوبة عالية",
	schedule.ReasonColdNight:     "برد ليلي",
}

var reasonsBN = map[schedule.Reason]string{
	schedule.ReasonHeatWave:      "তাপ তরঙ্গ",
	schedule.ReasonColdWave:      "ঠান্ডার তরঙ্গ",
	schedule.ReasonPostDeworming: "কৃমির ঔষধের পর সহায়তা",
	schedule.ReasonFeedChange:    "খাবার পরিবর্তন",
	schedule.ReasonPreventive:    "প্রতিরোধমূলক সহায়তা",
	schedule.ReasonHighHumidity:  "উচ্চ আর্দ্রতা",
	schedule.ReasonColdNight:     "ঠান্ডা রাত",
}

// ReasonAR returns the Arabic phrasing for a trigger reason.
func ReasonAR(r schedule.Reason) string {
	if s, ok := reasonsAR[r]; ok {
		return s
	}
	return reasonsAR[schedule.ReasonPreventive]
}

// ReasonBN returns the Bengali phrasing for a trigger reason.
func ReasonBN(r schedule.Reason) string {
	if s, ok := reasonsBN[r]; ok {
		return s
	}
	return reasonsBN[schedule.ReasonPreventive]
}

// icons maps task kinds to their feed icons.
var icons = map[schedule.TaskKind]string{
	schedule.TaskDeworming:      "🪱",
	schedule.TaskVitamins:       "💊",
	schedule.TaskCoccidiosis:    "🦠",
	schedule.TaskSanitization:   "🧹",
	schedule.TaskWaterStation:   "💧",
	schedule.TaskWeeklyCleaning: "🧽",
	schedule.TaskSoilTurning:    "🌱",
	schedule.TaskVentilation:    "💨",
	schedule.TaskFeederCleaning: "🪣",
	schedule.TaskFertilizer:     "🌳",

	schedule.TaskPipeChangeWater: "🚰",
	schedule.TaskPipeRinse:       "🚰",
	schedule.TaskPipeSanitize:    "🚰",
	schedule.TaskPipeDeepClean:   "🚰",
}

// Icon returns the feed icon for a task kind.
func Icon(kind schedule.TaskKind) string {
	if s, ok := icons[kind]; ok {
		return s
	}
	return "🔔"
}
