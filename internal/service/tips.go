package service

import "math/rand/v2"

var tips = []string{
	"VulnInsights aggregates real-time cybersecurity research from leading security experts through Medium RSS feeds.",
	"The platform features advanced content filtering and search capabilities to help you discover relevant security insights.",
	"Zero-day vulnerabilities are security flaws that are unknown to the vendor and have no available patch.",
	"Penetration testing is a simulated cyber attack to identify security vulnerabilities in systems and networks.",
	"OWASP Top 10 is a standard awareness document for developers and web application security.",
	"Social engineering attacks rely on human interaction and often involve tricking people into breaking security procedures.",
	"Multi-factor authentication (MFA) adds an extra layer of security beyond just passwords.",
	"Encryption converts readable data into an unreadable format to protect sensitive information.",
	"A firewall acts as a barrier between a trusted network and untrusted networks.",
	"Incident response is the systematic approach to handling security breaches and cyber attacks.",
	"Threat intelligence involves collecting and analyzing information about potential security threats.",
	"Vulnerability assessment is the process of identifying, quantifying, and prioritizing security vulnerabilities.",
	"Security operations centers (SOCs) monitor and analyze security events in real-time.",
	"Bug bounty programs reward security researchers for finding and reporting vulnerabilities.",
	"Responsible disclosure ensures vulnerabilities are reported to vendors before public disclosure.",
	"Security researchers often use specialized tools like Wireshark, Metasploit, and Burp Suite.",
	"The cybersecurity industry faces a significant skills gap with high demand for qualified professionals.",
	"Regular security audits help organizations identify and address potential security weaknesses.",
	"Security awareness training is crucial for preventing social engineering attacks.",
	"The principle of least privilege limits user access to only what's necessary for their role.",
	"Security by design integrates security measures into the development process from the start.",
	"Continuous monitoring helps detect security threats and vulnerabilities in real-time.",
	"Security frameworks like NIST and ISO 27001 provide guidelines for cybersecurity best practices.",
	"The cybersecurity landscape is constantly evolving with new threats and attack vectors emerging daily.",
}

// TipsService hands out "Did you know?" tips.
type TipsService struct {
	pick func(n int) int
}

func NewTipsService() *TipsService {
	return &TipsService{pick: rand.IntN}
}

// Random returns one tip.
func (s *TipsService) Random() string {
	return tips[s.pick(len(tips))]
}

// All returns every tip in a fresh random order.
func (s *TipsService) All() []string {
	out := make([]string, len(tips))
	copy(out, tips)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
