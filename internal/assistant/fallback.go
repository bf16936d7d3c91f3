package assistant

import (
	"strings"

	"github.com/mekongworks/sitekit/internal/locale"
)

// The canned-reply table answers without the model: it keys on a few intent
// keywords and always closes with the contact signature, so the widget never
// shows an empty bubble or a raw provider error.

type cannedTopic struct {
	keywords map[locale.Locale][]string
	replies  map[locale.Locale]string
}

var contactSignature = map[locale.Locale]string{
	locale.English:    "You can reach the team directly at hello@mekongworks.com or through the contact page.",
	locale.Vietnamese: "Bạn có thể liên hệ trực tiếp với chúng tôi qua hello@mekongworks.com hoặc trang liên hệ.",
	locale.Japanese:   "hello@mekongworks.com またはお問い合わせページから直接ご連絡いただけます。",
}

var cannedTopics = []cannedTopic{
	{
		keywords: map[locale.Locale][]string{
			locale.English:    {"service", "offer", "develop", "build"},
			locale.Vietnamese: {"dịch vụ", "phát triển", "xây dựng"},
			locale.Japanese:   {"サービス", "開発"},
		},
		replies: map[locale.Locale]string{
			locale.English:    "We design and build custom software: web platforms, data pipelines and internal tools. The use-cases section shows recent projects.",
			locale.Vietnamese: "Chúng tôi thiết kế và xây dựng phần mềm theo yêu cầu: nền tảng web, xử lý dữ liệu và công cụ nội bộ. Mục dự án tiêu biểu có các ví dụ gần đây.",
			locale.Japanese:   "当社はウェブプラットフォーム、データ基盤、社内ツールなどの受託開発を行っています。導入事例のページで最近のプロジェクトをご覧いただけます。",
		},
	},
	{
		keywords: map[locale.Locale][]string{
			locale.English:    {"price", "cost", "quote", "budget"},
			locale.Vietnamese: {"giá", "chi phí", "báo giá"},
			locale.Japanese:   {"価格", "費用", "見積"},
		},
		replies: map[locale.Locale]string{
			locale.English:    "Pricing depends on scope, so we prepare a quote after a short call about your project.",
			locale.Vietnamese: "Chi phí phụ thuộc vào phạm vi dự án, vì vậy chúng tôi sẽ gửi báo giá sau một buổi trao đổi ngắn.",
			locale.Japanese:   "料金はプロジェクトの規模によりますので、簡単なお打ち合わせの後にお見積りをお送りします。",
		},
	},
	{
		keywords: map[locale.Locale][]string{
			locale.English:    {"job", "career", "hiring", "work with"},
			locale.Vietnamese: {"tuyển dụng", "việc làm", "ứng tuyển"},
			locale.Japanese:   {"採用", "求人"},
		},
		replies: map[locale.Locale]string{
			locale.English:    "We are always happy to hear from engineers. Open roles are listed on the careers page; send a CV even if nothing fits exactly.",
			locale.Vietnamese: "Chúng tôi luôn chào đón các kỹ sư. Vị trí đang tuyển có trên trang tuyển dụng; bạn cũng có thể gửi CV dù chưa có vị trí phù hợp.",
			locale.Japanese:   "エンジニアの方からのご連絡を歓迎します。募集中のポジションは採用ページに掲載しています。",
		},
	},
}

var cannedDefault = map[locale.Locale]string{
	locale.English:    "Thanks for your message. I cannot answer that in detail right now.",
	locale.Vietnamese: "Cảm ơn tin nhắn của bạn. Hiện tại tôi chưa thể trả lời chi tiết câu hỏi này.",
	locale.Japanese:   "メッセージありがとうございます。現在この質問には詳しくお答えできません。",
}

// CannedReply answers from the local table. It never returns an empty
// string: unmatched messages get the default reply, and every reply carries
// the contact signature.
func CannedReply(message string, target locale.Locale) string {
	if !locale.IsSupported(string(target)) {
		target = locale.Default
	}
	normalized := strings.ToLower(message)

	reply := cannedDefault[target]
	for _, topic := range cannedTopics {
		if topicMatches(topic, normalized, target) {
			reply = topic.replies[target]
			break
		}
	}
	return reply + "\n\n" + contactSignature[target]
}

func topicMatches(topic cannedTopic, normalized string, target locale.Locale) bool {
	// Match the visitor's locale first, then English: people often type
	// English into the widget regardless of the page language.
	for _, keyword := range topic.keywords[target] {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	if target != locale.English {
		for _, keyword := range topic.keywords[locale.English] {
			if strings.Contains(normalized, keyword) {
				return true
			}
		}
	}
	return false
}
