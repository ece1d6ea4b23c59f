// Package profile holds the fixed facts about Abdu Subhan that the assistant
// can look up, and exposes each of them as a parameterless tool.
package profile

const (
	contactInfo = "You can contact Abdu Subhan via:\n" +
		"- Email: abdusubhan6678@gmail.com\n" +
		"- GitHub: https://github.com/abduSubhan11/\n" +
		"- Or fill the contact form on his portfolio: https://the-subhan-portfolio.netlify.app/"

	currentWork = "Abdu Subhan is currently working at Xntric as a JAMstack Developer. " +
		"He is also a freelance Web Developer, open to remote or contract-based opportunities."

	location = "Abdu Subhan is based in Pakistan, and is available for remote work worldwide."

	bio = "Abdu Subhan is a passionate Web Developer specializing in full-stack solutions. " +
		"He builds modern, performant websites and apps using MERN Stack, JAMstack, GSAP, Framer Motion, and Three.js. " +
		"Currently exploring Agentic AI technologies and building intelligent applications."

	skills = "Abdu Subhan's technical skillset includes:\n" +
		"- 🌐 Frontend: HTML, CSS, JavaScript, TypeScript, Tailwind CSS, React, Next.js\n" +
		"- 🛠️ Backend: Node.js, Express.js, Python\n" +
		"- 🗄️ Database: MongoDB\n" +
		"- 🎨 Animation: GSAP, Framer Motion, Three.js\n" +
		"- 🔧 Tools: Git, VS Code, Postman, Vercel, Netlify, Figma"

	experience = "Professional experience:\n" +
		"- Xntric: JAMstack Developer (2024–present)\n" +
		"- Freelance: Full-stack Web Developer (2024–present)\n" +
		"- Built several production-grade apps using modern stacks.\n" +
		"Portfolio: https://the-subhan-portfolio.netlify.app/"

	education = "Education:\n" +
		"- Agentic AI Training at GIAIC (Governor Initiative for AI & Computing)\n" +
		"- Full-stack Web Development via online certifications\n" +
		"- Intermediate (Pre-Engineering), Pakistan"

	projects = "Some projects by Abdu Subhan:\n" +
		"- 🛒 E-Commerce Store (React + Node.js)\n" +
		"- 📖 Fullstack Blog (Next.js + MongoDB)\n" +
		"- 🌐 Animated Portfolio (GSAP, Framer Motion)\n" +
		"- 🤖 AI Chatbot (OpenAI Agents SDK)\n" +
		"- 🔗 View all: https://the-subhan-portfolio.netlify.app/ and GitHub: https://github.com/abduSubhan11/"
)

// ContactInfo returns the ways to reach Abdu Subhan.
func ContactInfo() string { return contactInfo }

// CurrentWork returns his current position.
func CurrentWork() string { return currentWork }

// Location returns where he is based.
func Location() string { return location }

// Bio returns a short biography.
func Bio() string { return bio }

// Skills returns his technical skillset.
func Skills() string { return skills }

// Experience returns his professional experience.
func Experience() string { return experience }

// Education returns his education history.
func Education() string { return education }

// Projects returns a selection of his projects.
func Projects() string { return projects }
