package quiz

// questionBank is the static offline question bank, keyed by topic and
// difficulty. The /quiz/generate endpoint produces AI quizzes; this bank
// is the default that works without a backend round-trip.
var questionBank = map[string]map[Difficulty][]Question{
	"passwords": {
		Beginner: {
			{
				Prompt:      "What makes a password strong?",
				Options:     []string{"Using your birth year", "Length and unpredictability", "Using the same one everywhere", "Keeping it under 8 characters"},
				Answer:      1,
				Explanation: "Long, random passwords resist both guessing and brute force.",
			},
			{
				Prompt:      "How often should you reuse a password across sites?",
				Options:     []string{"Always, it's easier to remember", "Only on unimportant sites", "Never", "Once per year"},
				Answer:      2,
				Explanation: "One breached site exposes every account sharing that password.",
			},
			{
				Prompt:      "What is the safest way to keep track of many passwords?",
				Options:     []string{"A sticky note on your monitor", "A password manager", "A text file named passwords.txt", "Memorizing one password for everything"},
				Answer:      1,
				Explanation: "Password managers encrypt your vault behind one strong master password.",
			},
			{
				Prompt:      "What does two-factor authentication add?",
				Options:     []string{"A second, independent proof of identity", "A longer password", "A backup email", "Faster logins"},
				Answer:      0,
				Explanation: "Even a stolen password is useless without the second factor.",
			},
			{
				Prompt:      "Which of these is the strongest password?",
				Options:     []string{"password123", "Summer2024!", "correct-horse-battery-staple-42", "qwerty"},
				Answer:      2,
				Explanation: "Long passphrases beat short passwords with symbol substitutions.",
			},
		},
		Intermediate: {
			{
				Prompt:      "Why are SMS codes a weaker second factor than an authenticator app?",
				Options:     []string{"They expire too quickly", "SIM-swapping can intercept them", "They are longer to type", "They cost money"},
				Answer:      1,
				Explanation: "Attackers who hijack your phone number receive your SMS codes.",
			},
			{
				Prompt:      "What does a credential-stuffing attack rely on?",
				Options:     []string{"Weak encryption", "Password reuse across sites", "Unpatched servers", "Social engineering"},
				Answer:      1,
				Explanation: "Leaked credential pairs are replayed against other services.",
			},
			{
				Prompt:      "How should a service store your password?",
				Options:     []string{"Encrypted with a shared key", "In plain text behind a firewall", "As a salted, slow hash", "Base64 encoded"},
				Answer:      2,
				Explanation: "Salted slow hashes like bcrypt make bulk cracking expensive.",
			},
		},
		Advanced: {
			{
				Prompt:      "What advantage do passkeys have over passwords?",
				Options:     []string{"They are shorter", "The server never holds a reusable secret", "They work without a device", "They never need backup"},
				Answer:      1,
				Explanation: "Passkeys use public-key cryptography; a server breach leaks nothing replayable.",
			},
			{
				Prompt:      "Why does bcrypt include a cost factor?",
				Options:     []string{"To bill API users", "To slow hashing as hardware improves", "To shorten stored hashes", "To randomize salts"},
				Answer:      1,
				Explanation: "A tunable work factor keeps brute force expensive over time.",
			},
		},
	},
	"phishing": {
		Beginner: {
			{
				Prompt:      "An email says your account will be closed in 24 hours unless you click a link. What is this tactic?",
				Options:     []string{"Urgency pressure", "A standard notice", "Two-factor authentication", "A newsletter"},
				Answer:      0,
				Explanation: "Manufactured urgency short-circuits careful reading.",
			},
			{
				Prompt:      "Before clicking a link in an email, what should you check?",
				Options:     []string{"The font", "The actual destination URL", "The email's length", "The time it was sent"},
				Answer:      1,
				Explanation: "Hover to reveal the real destination; display text can say anything.",
			},
			{
				Prompt:      "A bank asks for your full password by email. What do you do?",
				Options:     []string{"Reply with the password", "Call the number in the email", "Contact the bank through its official site", "Ignore it but click the link to check"},
				Answer:      2,
				Explanation: "Legitimate banks never ask for full credentials; verify out of band.",
			},
			{
				Prompt:      "What is 'spear phishing'?",
				Options:     []string{"Phishing over the phone", "Mass spam email", "A targeted attack using personal details", "Fake antivirus popups"},
				Answer:      2,
				Explanation: "Personalized lures are far more convincing than bulk spam.",
			},
			{
				Prompt:      "Which URL most likely belongs to the real PayPal?",
				Options:     []string{"paypal.secure-login.com", "paypa1.com", "paypal.com.verify.net", "paypal.com"},
				Answer:      3,
				Explanation: "Only the registered domain right before the path matters.",
			},
		},
		Intermediate: {
			{
				Prompt:      "What is a homograph attack?",
				Options:     []string{"Reusing stolen graphics", "Lookalike domains using similar characters", "Copying a site's HTML", "Typosquatting"},
				Answer:      1,
				Explanation: "Unicode characters can make a fake domain visually identical.",
			},
			{
				Prompt:      "Why does an attacker prefer OAuth consent phishing over credential phishing?",
				Options:     []string{"It bypasses passwords and MFA entirely", "It is easier to build", "It works offline", "It avoids email filters"},
				Answer:      0,
				Explanation: "A granted OAuth token gives durable access without any credential.",
			},
		},
	},
	"privacy": {
		Beginner: {
			{
				Prompt:      "What does private/incognito browsing actually do?",
				Options:     []string{"Hides your traffic from your ISP", "Stops websites tracking you", "Discards local history and cookies on close", "Makes you anonymous"},
				Answer:      2,
				Explanation: "It only affects what is stored on your own device.",
			},
			{
				Prompt:      "What does a VPN hide from your local network?",
				Options:     []string{"Nothing", "The destinations of your traffic", "Your device type", "Your passwords"},
				Answer:      1,
				Explanation: "Traffic is tunneled to the VPN server, hiding destinations from local observers.",
			},
			{
				Prompt:      "Which permission should a flashlight app NOT need?",
				Options:     []string{"Camera flash access", "Your contact list", "Screen display", "None of these"},
				Answer:      1,
				Explanation: "Permission requests unrelated to function signal data harvesting.",
			},
			{
				Prompt:      "What are tracking cookies used for?",
				Options:     []string{"Storing your passwords", "Following your activity across sites", "Speeding up page loads", "Blocking ads"},
				Answer:      1,
				Explanation: "Third-party cookies correlate your identity across unrelated sites.",
			},
		},
		Intermediate: {
			{
				Prompt:      "What is browser fingerprinting?",
				Options:     []string{"Logging in with a fingerprint", "Identifying you by your browser's unique configuration", "Scanning for malware", "A type of cookie"},
				Answer:      1,
				Explanation: "Fonts, canvas rendering and settings combine into a trackable fingerprint without cookies.",
			},
			{
				Prompt:      "Why does HTTPS not fully protect your browsing privacy?",
				Options:     []string{"It has weak encryption", "Domain names are still visible via DNS and SNI", "It only works on banking sites", "It expires"},
				Answer:      1,
				Explanation: "Content is encrypted, but observers still learn which sites you visit.",
			},
		},
	},
	"malware": {
		Beginner: {
			{
				Prompt:      "What does ransomware do?",
				Options:     []string{"Steals your passwords", "Encrypts your files and demands payment", "Shows extra ads", "Slows your internet"},
				Answer:      1,
				Explanation: "Backups kept offline are the reliable defense.",
			},
			{
				Prompt:      "How does a trojan differ from a virus?",
				Options:     []string{"It spreads through networks", "It disguises itself as legitimate software", "It only affects phones", "It is always visible"},
				Answer:      1,
				Explanation: "Trojans rely on the user choosing to run them.",
			},
			{
				Prompt:      "What is the safest response to an unexpected email attachment?",
				Options:     []string{"Open it to check the contents", "Scan it or verify with the sender first", "Forward it to a friend", "Rename it before opening"},
				Answer:      1,
				Explanation: "Attachments are a primary malware delivery channel.",
			},
			{
				Prompt:      "Why keep software updated?",
				Options:     []string{"For new features only", "Updates patch known exploited vulnerabilities", "To reset settings", "It is not important"},
				Answer:      1,
				Explanation: "Most compromises use vulnerabilities with existing patches.",
			},
		},
		Intermediate: {
			{
				Prompt:      "What is a supply-chain compromise?",
				Options:     []string{"Malware in shipping software", "Tampering with software before it reaches users", "Attacking delivery trucks", "Fake invoices"},
				Answer:      1,
				Explanation: "A trusted update channel turns one compromise into many.",
			},
			{
				Prompt:      "What makes fileless malware hard to detect?",
				Options:     []string{"It is encrypted", "It lives in memory and abuses legitimate tools", "It is very small", "It deletes logs"},
				Answer:      1,
				Explanation: "No file on disk means signature scanners have nothing to match.",
			},
		},
	},
	"networks": {
		Beginner: {
			{
				Prompt:      "What is the risk of open public Wi-Fi?",
				Options:     []string{"Higher data charges", "Others on the network can observe or intercept traffic", "Slower speeds only", "It drains your battery"},
				Answer:      1,
				Explanation: "Unencrypted networks expose traffic to anyone nearby.",
			},
			{
				Prompt:      "What should you change first on a new home router?",
				Options:     []string{"The case color", "The default admin password", "The Wi-Fi channel", "Nothing"},
				Answer:      1,
				Explanation: "Default credentials are public knowledge.",
			},
			{
				Prompt:      "What does the padlock icon in your browser mean?",
				Options:     []string{"The site is trustworthy", "The connection is encrypted", "The site has no malware", "You are anonymous"},
				Answer:      1,
				Explanation: "Encryption in transit says nothing about who runs the site.",
			},
			{
				Prompt:      "Which Wi-Fi security mode should you use at home?",
				Options:     []string{"Open", "WEP", "WPA2 or WPA3", "Hidden SSID only"},
				Answer:      2,
				Explanation: "WEP is broken; hiding the SSID is not security.",
			},
		},
		Advanced: {
			{
				Prompt:      "What attack does DNS-over-HTTPS primarily mitigate?",
				Options:     []string{"Phishing", "On-path observation and tampering of DNS queries", "Port scanning", "Brute force"},
				Answer:      1,
				Explanation: "Plaintext DNS lets local observers log and rewrite lookups.",
			},
			{
				Prompt:      "Why is an evil-twin access point effective?",
				Options:     []string{"It jams the real network", "Devices auto-join familiar SSIDs without verifying them", "It cracks WPA3", "It spoofs MAC addresses"},
				Answer:      1,
				Explanation: "Clients trust the network name, which anyone can broadcast.",
			},
		},
	},
}
