// Package catalog holds the static canned-response data for the assistant.
//
// Everything here is immutable after process start: the resolution engine and
// the conversation state machine only ever read it.
package catalog

import (
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
)

// Response is a canned reply paired with its topic.
type Response struct {
	Text  string
	Topic model.Topic
}

// ExactEntry maps one literal expected question to a curated response.
// Entries are scanned in declaration order for containment matching, so the
// order below is part of the contract.
type ExactEntry struct {
	Question string
	Response Response
}

// KeywordRule scores free-text input by keyword containment. Priority breaks
// score ties: lower wins. Priorities are explicit rather than relying on
// declaration order.
type KeywordRule struct {
	Topic    model.Topic
	Keywords []string
	Text     string
	Priority int
}

const (
	experienceText = `Jonas is a Full Stack Developer with experience in building and maintaining scalable applications
 using .NET, Python, Next.js, TypeScript, and various cloud services.`

	skillsText = `Jonas' key technical skills include:
- Frontend: React, Next.js, Tailwind CSS
- Backend: .NET, Python, Node.js, TypeScript, PostgreSQL
- Cloud & DevOps: Docker, GitHub Actions, Azure
- Tools: Git, VS Code, Jira`

	projectsText = `Some of Jonas' notable projects include:
1. Portfolio Website (Next.js 14, TypeScript, Tailwind)
2. Chat Application (React, OpenAI, WebSocket)`

	contactText = `Get in Touch with Jonas:
📧 Email: jonaszachopoulsen@live.dk
📞 Phone: +45 50 22 73 00
🐙 GitHub: github.com/Jonas-Zacho-Poulsen

🔽 Download CV for more details.`

	defaultText = "I'm an assistant that can help you learn more about Jonas' experience, skills, and projects. Feel free to ask me anything!"
)

// ApologyText is the hard-coded reply for the unreachable case where even the
// local engine fails. It is the only reply that admits the assistant cannot help.
const ApologyText = "I'm sorry, I'm having trouble responding right now. Please try again later."

// RateLimitText is the advisory shown when submissions arrive too quickly.
const RateLimitText = "Please wait a moment before sending another message."

// FallbackNote is recorded on the conversation when a remote provider failed
// and the local engine answered instead.
const FallbackNote = "Remote provider unavailable, using fallback responses."

// Default returns the default canned response, also used as the welcome message.
func Default() Response {
	return Response{Text: defaultText, Topic: model.TopicDefault}
}

// ByTopic returns the canned response for a topic.
func ByTopic(topic model.Topic) Response {
	for _, rule := range keywordRules {
		if rule.Topic == topic {
			return Response{Text: rule.Text, Topic: rule.Topic}
		}
	}
	return Default()
}

var exactQuestions = []ExactEntry{
	// Experience questions
	{
		Question: "What's Jonas' experience?",
		Response: Response{
			Text:  "Jonas is an experienced full-stack developer with expertise in modern web development. He has worked on various projects including responsive websites, complex web applications and data visualisation. His professional journey includes both freelance and collaborative teamwork, focusing on creating efficient, scalable solutions.",
			Topic: model.TopicExperience,
		},
	},
	{
		Question: "Tell me about Jonas' background",
		Response: Response{
			Text:  "Jonas Zacho Poulsen is a passionate full-stack developer from Denmark. He specializes in creating modern, responsive web applications using cutting-edge technologies. With a strong foundation in both frontend and backend development, Jonas has built a diverse portfolio of projects that showcase his technical skills and creative problem-solving abilities.",
			Topic: model.TopicExperience,
		},
	},

	// Skills questions
	{
		Question: "What technologies does he use?",
		Response: Response{
			Text:  "Jonas is proficient in a wide range of modern technologies including .NET, Python, React, Next.js, TypeScript, JavaScript, HTML5, CSS3, Tailwind CSS, Node.js, and various databases. He also has experience with cloud platforms, version control (Git), and deployment tools. His tech stack focuses on performance, scalability, and maintainability.",
			Topic: model.TopicSkills,
		},
	},
	{
		Question: "What are Jonas' strongest skills?",
		Response: Response{
			Text:  "Jonas excels in full-stack web development with particular strength in React and Next.js ecosystems. His key strengths include TypeScript development, responsive design with Tailwind CSS, API integration, database design, and creating seamless user experiences. He's also skilled in problem-solving, project architecture, and modern development workflows.",
			Topic: model.TopicSkills,
		},
	},

	// Projects questions
	{
		Question: "Show me his projects",
		Response: Response{
			Text:  "Jonas has developed several impressive projects including this interactive portfolio website, responsive web applications, and various client projects. His work demonstrates expertise in modern web development, user interface design, and full-stack architecture.",
			Topic: model.TopicProjects,
		},
	},

	// Contact questions
	{
		Question: "How can I contact him?",
		Response: Response{
			Text:  "Get in Touch with Jonas:📧 Email: jonaszachopoulsen@live.dk📞 Phone: +45 50 22 73 00🐙 GitHub: github.com/Jonas-Zacho-Poulsen🔽 Download CV for more details.",
			Topic: model.TopicContact,
		},
	},
	{
		Question: "Is Jonas available for hire?",
		Response: Response{
			Text:  "Yes! Jonas is actively seeking new opportunities and is available for both freelance projects and full-time positions. He's particularly interested in challenging projects that involve modern web technologies and innovative solutions. Contact him at jonaszp97@gmail.com to discuss your project needs.",
			Topic: model.TopicContact,
		},
	},
	{
		Question: "What makes Jonas a great developer?",
		Response: Response{
			Text:  "Jonas combines technical expertise with strong problem-solving skills and attention to detail. He stays current with the latest web technologies, writes clean and maintainable code, and focuses on creating optimal user experiences. His ability to work across the full stack, communicate effectively, and deliver high-quality solutions makes him a valuable team member and reliable developer.",
			Topic: model.TopicExperience,
		},
	},
}

var keywordRules = []KeywordRule{
	{
		Topic:    model.TopicExperience,
		Keywords: []string{"experience", "background", "work"},
		Text:     experienceText,
		Priority: 1,
	},
	{
		Topic:    model.TopicSkills,
		Keywords: []string{"skill", "technology", "tech stack", "programming language", "language", "lang", "framework", "tool"},
		Text:     skillsText,
		Priority: 2,
	},
	{
		Topic:    model.TopicProjects,
		Keywords: []string{"project", "portfolio", "build"},
		Text:     projectsText,
		Priority: 3,
	},
	{
		Topic:    model.TopicContact,
		Keywords: []string{"contact", "reach", "email", "phone"},
		Text:     contactText,
		Priority: 4,
	},
}

var suggestedQuestions = map[model.Topic][]string{
	model.TopicExperience: {
		"What technical skills does Jonas have?",
		"Can you tell me about his projects?",
		"How can I contact Jonas?",
	},
	model.TopicSkills: {
		"What's Jonas' work experience?",
		"Tell me about his projects",
		"What's the best way to reach him?",
	},
	model.TopicProjects: {
		"What are his technical skills?",
		"What's his background?",
		"How can I get in touch?",
	},
	model.TopicContact: {
		"What's Jonas' experience?",
		"What technologies does he work with?",
		"Tell me about his projects",
	},
	model.TopicDefault: {
		"What's Jonas' background?",
		"What are his technical skills?",
		"Tell me about his projects",
		"How can I contact him?",
	},
}

// ExactQuestions returns the exact-question catalog in declaration order.
func ExactQuestions() []ExactEntry {
	return exactQuestions
}

// KeywordRules returns the keyword rules sorted by priority.
func KeywordRules() []KeywordRule {
	return keywordRules
}

// SuggestedQuestions returns the follow-up questions for a topic. Unknown
// topics get the default set.
func SuggestedQuestions(topic model.Topic) []string {
	if qs, ok := suggestedQuestions[topic]; ok {
		return qs
	}
	return suggestedQuestions[model.TopicDefault]
}
