package messages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smsmy/farm-notifier/internal/agenda"
	"github.com/smsmy/farm-notifier/internal/schedule"
)

// DefaultDocsBaseURL is the documentation site linked from every
// notification.
const DefaultDocsBaseURL = "https://smsmy.github.io/farm-notifier/docs"

// Message is one rendered bilingual notification. Image, when not
// empty, names the illustration sent with the Arabic message.
type Message struct {
	Kind    schedule.TaskKind
	Arabic  string
	Bengali string
	Image   string
}

// Renderer turns agenda payloads into MarkdownV2 notification text.
type Renderer struct {
	baseURL string
}

// NewRenderer builds a renderer. baseURL falls back to
// DefaultDocsBaseURL when empty.
func NewRenderer(baseURL string) *Renderer {
	if baseURL == "" {
		baseURL = DefaultDocsBaseURL
	}
	return &Renderer{baseURL: strings.TrimRight(baseURL, "/")}
}

// Shared MarkdownV2 fragments appended to most notifications.
var (
	disclaimerAR = EscapeMarkdownV2("\n\n⚠️ قد يختلف شكل العبوة أو الاسم التجاري. الأهم هو المادة الفعالة المذكورة.")
	disclaimerBN = EscapeMarkdownV2("\n\n⚠️ প্যাকেজিং বা ব্র্যান্ডের নাম ভিন্ন হতে পারে। উল্লিখিত সক্রিয় উপাদানটিই মুখ্য।")
	documentAR   = EscapeMarkdownV2("\n\n🎥 *بعد تنفيذ المهمة، يرجى إضافة فيديو أو صورة توثّق الإنجاز.*")
	documentBN   = EscapeMarkdownV2("\n\n🎥 *কাজ সম্পন্ন করার পরে অনুগ্রহ করে একটি ভিডিও বা ছবি যুক্ত করুন।*")
)

func (r *Renderer) linkAR(page string) string {
	return fmt.Sprintf("[🔍 المزيد من التفاصيل](%s/%s.html)", r.baseURL, page)
}

func (r *Renderer) linkBN(page string) string {
	return fmt.Sprintf("[🔍 আরও বিস্তারিত](%s/%s.html)", r.baseURL, page)
}

// Render builds the bilingual notification for one agenda payload.
func (r *Renderer) Render(p agenda.TaskPayload) Message {
	msg := Message{Kind: p.Kind}

	switch p.Kind {
	case schedule.TaskDeworming:
		drug := p.Drug
		if drug == "" {
			drug = "غير محدد"
		}
		msg.Arabic = fmt.Sprintf(
			"🐔 *تنبيه دواء الديدان* 🔄\n\n🏷️ *الدواء المطلوب:* %s\n💧 *الطريقة:* %s\n\n%s%s%s",
			EscapeMarkdownV2(drug),
			EscapeMarkdownV2("يخلط مع ماء الشرب لمدة يوم واحد فقط."),
			r.linkAR("deworming"), disclaimerAR, documentAR)
		msg.Bengali = fmt.Sprintf(
			"🐔 *কৃমির ঔষধের সতর্কতা* 🔄\n\n🏷️ *প্রয়োজনীয় ঔষধ:* %s\n💧 *পদ্ধতি:* %s\n\n%s%s%s",
			EscapeMarkdownV2(p.Drug),
			EscapeMarkdownV2("শুধুমাত্র একদিনের জন্য খাবার পানির সাথে মিশিয়ে দিন।"),
			r.linkBN("deworming"), disclaimerBN, documentBN)
		msg.Image = SafeFilename(p.Drug) + ".jpg"

	case schedule.TaskVitamins:
		msg.Arabic = fmt.Sprintf(
			"💊 *تنبيه فيتامينات وإلكتروليت* 🌡️\n\n🔥 *السبب:* %s\n💧 *الطريقة:* %s\n\n%s%s%s",
			EscapeMarkdownV2(ReasonAR(p.Reason)),
			EscapeMarkdownV2("تضاف إلى ماء الشرب لمدة يومين."),
			r.linkAR("vitamins"), disclaimerAR, documentAR)
		msg.Bengali = fmt.Sprintf(
			"💊 *ভিটামিন ও ইলেক্ট্রোলাইট সতর্কতা* 🌡️\n\n🔥 *কারণ:* %s\n💧 *পদ্ধতি:* %s\n\n%s%s%s",
			EscapeMarkdownV2(ReasonBN(p.Reason)),
			EscapeMarkdownV2("দুই দিনের জন্য পানির সাথে যোগ করুন।"),
			r.linkBN("vitamins"), disclaimerBN, documentBN)
		msg.Image = "vitamins.jpg"

	case schedule.TaskCoccidiosis:
		msg.Arabic = fmt.Sprintf(
			"🦠 *تنبيه وقاية من الكوكسيديا* 💧\n\n⚠️ *السبب:* %s\n💧 *الطريقة:* %s\n\n%s%s%s",
			EscapeMarkdownV2(ReasonAR(p.Reason)),
			EscapeMarkdownV2("إضافة مضاد كوكسيديا للماء."),
			r.linkAR("coccidiosis"), disclaimerAR, documentAR)
		msg.Bengali = fmt.Sprintf(
			"🦠 *কক্সিডিওসিস প্রতিরোধের সতর্কতা* 💧\n\n⚠️ *কারণ:* %s\n💧 *পদ্ধতি:* %s\n\n%s%s%s",
			EscapeMarkdownV2(ReasonBN(p.Reason)),
			EscapeMarkdownV2("পানিতে কক্সিডিওসিস প্রতিরোধক যোগ করুন।"),
			r.linkBN("coccidiosis"), disclaimerBN, documentBN)
		msg.Image = "coccidia.jpg"

	case schedule.TaskSanitization:
		msg.Arabic = fmt.Sprintf(
			"🧹 *تنبيه تطهير الحظيرة* 🧹\n\n%s\n\n%s%s%s",
			EscapeMarkdownV2("حان وقت تطهير وتعقيم الحظيرة لضمان بيئة نظيفة وصحية للطيور."),
			r.linkAR("sanitization"), disclaimerAR, documentAR)
		msg.Bengali = fmt.Sprintf(
			"🧹 *খামার পরিষ্কারের সতর্কতা* 🧹\n\n%s\n\n%s%s%s",
			EscapeMarkdownV2("পাখিদের জন্য পরিষ্কার এবং স্বাস্থ্যকর পরিবেশ নিশ্চিত করতে খামার পরিষ্কার এবং জীবাণুমুক্ত করার সময়।"),
			r.linkBN("sanitization"), disclaimerBN, documentBN)
		msg.Image = "sanitizer.jpg"

	case schedule.TaskWaterStation:
		msg.Arabic = fmt.Sprintf(
			"🚰 *تنبيه تنظيف محطة الماء* 💧\n\n%s\n\n%s%s%s",
			EscapeMarkdownV2("حان وقت تنظيف نظام المياه."),
			r.linkAR("water_station"), disclaimerAR, documentAR)
		msg.Bengali = fmt.Sprintf(
			"🚰 *পানি সরবরাহ সিস্টেম পরিষ্কার সতর্কতা* 💧\n\n%s\n\n%s%s%s",
			EscapeMarkdownV2("পানি ব্যবস্থা পরিষ্কার করার সময়।"),
			r.linkBN("water_station"), disclaimerBN, documentBN)
		msg.Image = "water_station.jpg"

	case schedule.TaskWeeklyCleaning:
		msg.Arabic = fmt.Sprintf(
			"🧹 *تنبيه التنظيف الأسبوعي للحظيرة* ✨\n\n%s\n\n%s%s",
			EscapeMarkdownV2("تنظيف الحظيرة الأسبوعي."),
			r.linkAR("weekly_cleaning"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🧹 *সাপ্তাহিক খামার পরিষ্কার সতর্কতা* ✨\n\n%s\n\n%s%s",
			EscapeMarkdownV2("সাপ্তাহিক খামার পরিষ্কার।"),
			r.linkBN("weekly_cleaning"), documentBN)
		msg.Image = "coop_cleaning.jpg"

	case schedule.TaskSoilTurning:
		msg.Arabic = fmt.Sprintf(
			"🌾 *تنبيه تقليب التراب داخل الحظيرة* 🔄\n\n%s\n\n%s%s",
			EscapeMarkdownV2("تقليب التربة لتقليل الرطوبة."),
			r.linkAR("soil_turning"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🌾 *মাটি নাড়াচাড়া সতর্কতা* 🔄\n\n%s\n\n%s%s",
			EscapeMarkdownV2("আদ্রতা কমাতে মাটি আলগা করুন।"),
			r.linkBN("soil_turning"), documentBN)
		msg.Image = "soil_turning.jpg"

	case schedule.TaskVentilation:
		msg.Arabic = fmt.Sprintf(
			"🌬️ *تنبيه فحص التهوية* 💨\n\n%s\n\n%s%s",
			EscapeMarkdownV2("فحص التهوية وتدفق الهواء."),
			r.linkAR("ventilation"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🌬️ *বায়ুচলাচল পরীক্ষা সতর্কতা* 💨\n\n%s\n\n%s%s",
			EscapeMarkdownV2("বায়ুচলাচল পরীক্ষা করুন।"),
			r.linkBN("ventilation"), documentBN)
		msg.Image = "ventilation.jpg"

	case schedule.TaskFeederCleaning:
		msg.Arabic = fmt.Sprintf(
			"🍽️ *تنبيه غسيل المعالف العميق* 🧼\n\n%s\n\n%s%s",
			EscapeMarkdownV2("تنظيف وتطهير المعالف."),
			r.linkAR("feeder_cleaning"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🍽️ *খাবার পাত্রের গভীর পরিষ্কার* 🧼\n\n%s\n\n%s%s",
			EscapeMarkdownV2("খাবার পাত্র পরিষ্কার করুন।"),
			r.linkBN("feeder_cleaning"), documentBN)
		msg.Image = "feeder_cleaning.jpg"

	case schedule.TaskPipeChangeWater, schedule.TaskPipeRinse,
		schedule.TaskPipeSanitize, schedule.TaskPipeDeepClean:
		return r.renderPipe(p)

	case schedule.TaskFertilizer:
		treeAR := EscapeMarkdownV2(TreeNameAR(p.Tree))
		treeBN := EscapeMarkdownV2(TreeNameBN(p.Tree))
		page := p.Tree
		if page == "" {
			page = "fertilizer"
		}
		msg.Arabic = fmt.Sprintf(
			"🍌 *تنبيه تسميد %s* 🍌\n\n%s\n\n🧪 *السماد:* %s\n⚖️ *الكمية:* %s\n\n[🔍 المزيد من التفاصيل](%s/%s.html)%s",
			treeAR,
			EscapeMarkdownV2("حان موعد تسميد المحصول للحصول على أفضل جودة وكمية. تفقّد النباتات الآن."),
			EscapeMarkdownV2(p.Fertilizer),
			EscapeMarkdownV2(formatAmount(p.AmountKg)+" كجم"),
			r.baseURL, page, documentAR)
		msg.Bengali = fmt.Sprintf(
			"🍌 *%s সার প্রয়োগের সতর্কতা* 🍌\n\n%s\n\n🧪 *সার:* %s\n⚖️ *পরিমাণ:* %s\n\n[🔍 আরও বিস্তারিত](%s/%s.html)%s",
			treeBN,
			EscapeMarkdownV2("সেরা মানের ও পরিমাণের জন্য ফসলে সার দেওয়ার সময়। এখনই গাছ পরীক্ষা করুন।"),
			EscapeMarkdownV2(p.Fertilizer),
			EscapeMarkdownV2(formatAmount(p.AmountKg)+" কেজি"),
			r.baseURL, page, documentBN)
		msg.Image = "fertilizer.jpg"
	}

	return msg
}

func (r *Renderer) renderPipe(p agenda.TaskPayload) Message {
	msg := Message{Kind: p.Kind, Image: "pipe_waterer.jpg"}

	switch p.Kind {
	case schedule.TaskPipeChangeWater:
		msg.Arabic = fmt.Sprintf(
			"🚰 *تنبيه السقاية الأنبوبية: تغيير الماء* 💧\n\n⏱️ %s\n\n%s%s",
			EscapeMarkdownV2("كل 3 أيام"), r.linkAR("pipe_waterer"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🚰 *পাইপ ওয়াটারার: পানি পরিবর্তন* 💧\n\n⏱️ %s\n\n%s%s",
			EscapeMarkdownV2("প্রতি ৩ দিন"), r.linkBN("pipe_waterer"), documentBN)

	case schedule.TaskPipeRinse:
		msg.Arabic = fmt.Sprintf(
			"🚰 *تنبيه السقاية الأنبوبية: شطف أسبوعي* 🚿\n\n%s\n\n%s%s",
			EscapeMarkdownV2("تنظيف الأنابيب من الرواسب."), r.linkAR("pipe_waterer"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🚰 *পাইপ ওয়াটারার: সাপ্তাহিক ধোয়া* 🚿\n\n%s\n\n%s%s",
			EscapeMarkdownV2("পাইপ পরিষ্কার করুন।"), r.linkBN("pipe_waterer"), documentBN)

	case schedule.TaskPipeSanitize:
		msg.Arabic = fmt.Sprintf(
			"🚰 *تنبيه السقاية الأنبوبية: تعقيم* 🧪\n\n%s\n\n%s%s",
			EscapeMarkdownV2("تعقيم الأنابيب."), r.linkAR("pipe_waterer"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🚰 *পাইপ ওয়াটারার: জীবাণুমুক্তকরণ* 🧪\n\n%s\n\n%s%s",
			EscapeMarkdownV2("পাইপ জীবাণুমুক্ত করুন।"), r.linkBN("pipe_waterer"), documentBN)

	case schedule.TaskPipeDeepClean:
		msg.Image = "pipe_waterer_deep.jpg"
		msg.Arabic = fmt.Sprintf(
			"🚰 *تنبيه السقاية الأنبوبية: تنظيف عميق* 🧽\n\n%s\n\n%s%s",
			EscapeMarkdownV2("إزالة البكتيريا المتراكمة."), r.linkAR("pipe_waterer"), documentAR)
		msg.Bengali = fmt.Sprintf(
			"🚰 *পাইপ ওয়াটারার: গভীর পরিষ্কার* 🧽\n\n%s\n\n%s%s",
			EscapeMarkdownV2("জমে থাকা ব্যাকটেরিয়া দূর করুন।"), r.linkBN("pipe_waterer"), documentBN)
	}

	return msg
}

// DewormingGuide is the separate guide-link message sent right after a
// deworming notification. It carries no image.
func (r *Renderer) DewormingGuide() Message {
	return Message{
		Kind: schedule.TaskDeworming,
		Arabic: fmt.Sprintf(
			"🛑 *مهم جداً \\- دليل استخدام أدوية الديدان للدواجن*\n\n[🔍 اضغط هنا للمزيد من التفاصيل](%s/deworming.html)",
			r.baseURL),
		Bengali: fmt.Sprintf(
			"🛑 *গুরুত্বপূর্ণ \\- পোল্ট্রি কৃমিনাশক ঔষধ ব্যবহারের নির্দেশিকা*\n\n[🔍 বিস্তারিত দেখুন](%s/deworming.html)",
			r.baseURL),
	}
}

// WeatherAlerts renders standalone alerts for severe conditions. They
// are sent on days with no scheduled tasks so the keeper still hears
// about dangerous weather.
func (r *Renderer) WeatherAlerts(report *schedule.WeatherReport) []Message {
	if report == nil {
		return nil
	}

	var alerts []Message
	if report.HeatWave {
		alerts = append(alerts, Message{
			Arabic:  "🌡️ *تحذير: موجة حر* 🔥\n\n🔥 حرارة عالية متوقعة\n🌿 تأكد من توفير الظل والماء البارد للدجاج\n🎥 *أرفق صوراً أو فيديو للمزرعة أثناء موجة الحر*",
			Bengali: "🌡️ *সতর্কতা: তাপ তরঙ্গ* 🔥\n\n🔥 উচ্চ তাপমাত্রা আশা করা যাচ্ছে\n🌿 মুরগির জন্য ছায়া এবং ঠান্ডা পানি নিশ্চিত করুন\n🎥 *তাপের তরঙ্গের সময় খামারের ছবি বা ভিডিও সংযুক্ত করুন*",
			Image:   "heat_warn.jpg",
		})
	}
	if report.ColdWave {
		alerts = append(alerts, Message{
			Arabic:  "❄️ *تحذير: موجة برد* 🌬️\n\n❄️ درجة حرارة منخفضة متوقعة\n🧥 تأكد من تدفئة الدجاج\n🎥 *أرفق صوراً أو فيديو لتدابير تدفئة الدجاج*",
			Bengali: "❄️ *সতর্কতা: ঠান্ডার তরঙ্গ* 🌬️\n\n❄️ নিম্ন তাপমাত্রা প্রত্যাশিত\n🧥 মুরগিকে উষ্ণ রাখা নিশ্চিত করুন\n🎥 *মুরগির উষ্ণ পদ্ধতির ছবি বা ভিডিও সংযুক্ত করুন*",
			Image:   "cold_warn.jpg",
		})
	}
	if report.HighHumidity {
		alerts = append(alerts, Message{
			Arabic:  "💧 *تحذير: رطوبة عالية* 🌧️\n\n💧 مخاطر ارتفاع الرطوبة\n👁️ زيادة فحص الدجاج وإضافة فيتامينات\n🎥 *أرفق صوراً أو فيديو لحالة المزرعة أثناء الرطوبة العالية*",
			Bengali: "💧 *সতর্কতা: উচ্চ আদ্রতা* 🌧️\n\n💧 উচ্চ আদ্রতার ঝুঁকি\n👁️ মুরগির পরিদর্শন এবং ভিটামিন যোগ করুন\n🎥 *উচ্চ আদ্রতার সময় খামারের অবস্থার ছবি বা ভিডিও সংযুক্ত করুন*",
			Image:   "humidity_warn.jpg",
		})
	}
	return alerts
}

// Title returns the short bilingual titles used by the notification feed.
func Title(p agenda.TaskPayload) (ar, bn string) {
	switch p.Kind {
	case schedule.TaskDeworming:
		return "دواء الديدان - " + p.Drug, "কৃমির ঔষধ - " + p.Drug
	case schedule.TaskVitamins:
		return "فيتامينات وإلكتروليت - " + ReasonAR(p.Reason),
			"ভিটামিন ও ইলেক্ট্রোলাইট - " + ReasonBN(p.Reason)
	case schedule.TaskCoccidiosis:
		return "وقاية من الكوكسيديا - " + ReasonAR(p.Reason),
			"কক্সিডিওসিস প্রতিরোধ - " + ReasonBN(p.Reason)
	case schedule.TaskSanitization:
		return "تطهير الحظيرة", "খামার জীবাণুমুক্তকরণ"
	case schedule.TaskWaterStation:
		return "تنظيف محطة الماء", "পানি স্টেশন পরিষ্কার"
	case schedule.TaskWeeklyCleaning:
		return "التنظيف الأسبوعي", "সাপ্তাহিক পরিষ্কার"
	case schedule.TaskSoilTurning:
		return "تقليب التراب", "মাটি নাড়াচাড়া"
	case schedule.TaskVentilation:
		return "فحص التهوية", "বায়ুচলাচল পরীক্ষা"
	case schedule.TaskFeederCleaning:
		return "غسيل المعالف", "খাবার পাত্র পরিষ্কার"
	case schedule.TaskFertilizer:
		return "تسميد " + TreeNameAR(p.Tree), TreeNameBN(p.Tree) + " সার প্রয়োগ"
	}

	if sub, ok := pipeSubTask(p.Kind); ok {
		return "السقاية الأنبوبية - " + pipeTaskNamesAR[sub],
			"পাইপ ওয়াটারার - " + pipeTaskNamesBN[sub]
	}
	return string(p.Kind), string(p.Kind)
}

func pipeSubTask(kind schedule.TaskKind) (schedule.PipeTask, bool) {
	switch kind {
	case schedule.TaskPipeChangeWater:
		return schedule.PipeChangeWater, true
	case schedule.TaskPipeRinse:
		return schedule.PipeRinse, true
	case schedule.TaskPipeSanitize:
		return schedule.PipeSanitize, true
	case schedule.TaskPipeDeepClean:
		return schedule.PipeDeepClean, true
	default:
		return "", false
	}
}

// formatAmount trims trailing zeros from a kilogram amount.
func formatAmount(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
