package i18n

type entry struct {
	ar string
	en string
}

// messages is the UI copy. Keys are grouped by page section.
var messages = map[string]entry{
	// Site chrome
	"site.name":    {"العقود الذكية السعودية", "Saudi AI Contracts"},
	"site.tagline": {"الحل الأمثل لتحليل العقود في المملكة", "The smart way to review contracts in the Kingdom"},
	"nav.upload":   {"تحليل العقد", "Analyze"},
	"nav.plans":    {"الباقات", "Plans"},
	"nav.about":    {"من نحن", "About"},
	"nav.feedback": {"تواصل معنا", "Contact"},
	"nav.toggle":   {"English", "العربية"},

	// Hero
	"hero.title":          {"حلل عقودك القانونية مع Saudi AI Contracts", "Analyze your legal contracts with Saudi AI Contracts"},
	"hero.subtitle":       {"ضمان الامتثال للقوانين واللوائح السعودية باستخدام تقنيات الذكاء الاصطناعي المتقدمة", "Ensure compliance with Saudi laws and regulations using advanced AI technology"},
	"hero.cta":            {"ابدأ التحليل", "Start Analysis"},
	"hero.plans":          {"تعرف على الباقات", "Explore Plans"},
	"hero.stat.accuracy":  {"دقة التحليل", "Analysis accuracy"},
	"hero.stat.contracts": {"عقد تم تحليله", "Contracts analyzed"},
	"hero.stat.support":   {"دعم فني متاح", "Support available"},
	"hero.stat.laws":      {"أنظمة سعودية مدعومة", "Supported Saudi regulations"},

	// Upload widget
	"upload.title":        {"تحليل العقد", "Contract Analysis"},
	"upload.description":  {"قم برفع العقد بتنسيق PDF أو DOCX أو TXT وتحديد نوع العقد (عمل، إيجار، بيع، شراكة)", "Upload your contract in PDF, DOCX or TXT format and select the contract type (employment, rental, sales, partnership)"},
	"upload.contractType": {"نوع العقد", "Contract Type"},
	"upload.drop":         {"اسحب وأفلت ملف العقد هنا", "Drag and drop your contract file here"},
	"upload.or":           {"أو", "or"},
	"upload.choose":       {"اختر ملفاً", "Choose a file"},
	"upload.formats":      {"يدعم ملفات PDF و DOCX و TXT", "Supports PDF, DOCX and TXT files"},
	"upload.selected":     {"الملف المحدد", "Selected file"},
	"upload.analyze":      {"تحليل العقد", "Analyze Contract"},
	"upload.analyzing":    {"جاري تحليل العقد...", "Analyzing contract..."},
	"upload.remove":       {"إزالة", "Remove"},
	"upload.progress":     {"نسبة الإنجاز", "Progress"},

	// Errors shown inline in the upload widget
	"error.selectFile":     {"الرجاء اختيار ملف وتحديد نوع العقد", "Please select a file and contract type"},
	"error.analysisFailed": {"حدث خطأ أثناء تحليل العقد", "An error occurred while analyzing the contract"},
	"error.unknown":        {"حدث خطأ غير معروف", "An unknown error occurred"},
	"error.unavailable":    {"خدمة التحليل غير متاحة حالياً، يرجى المحاولة لاحقاً", "The analysis service is currently unavailable, please try again later"},
	"error.tooLarge":       {"حجم الملف يتجاوز الحد المسموح به", "The file exceeds the maximum allowed size"},
	"error.invalidType":    {"نوع العقد غير صالح", "Invalid contract type"},
	"error.uploadFailed":   {"تعذر رفع الملف، يرجى المحاولة مرة أخرى", "The file could not be uploaded, please try again"},

	// Results
	"results.title":                 {"نتائج تحليل العقد", "Contract Analysis Results"},
	"results.reset":                 {"تحليل عقد آخر", "Analyze Another Contract"},
	"results.contractType":          {"نوع العقد", "Contract Type"},
	"results.date":                  {"تاريخ التحليل", "Analysis Date"},
	"results.score":                 {"درجة الامتثال", "Compliance Score"},
	"results.scoreNote":             {"درجة امتثال العقد للأنظمة واللوائح السعودية", "Contract compliance score with Saudi regulations"},
	"results.level":                 {"مستوى الامتثال", "Compliance Level"},
	"results.violations":            {"المخالفات القانونية", "Legal Violations"},
	"results.violations.empty":      {"لا توجد مخالفات قانونية", "No legal violations found"},
	"results.missing":               {"البنود المفقودة", "Missing Clauses"},
	"results.missing.empty":         {"جميع البنود المطلوبة موجودة", "All required clauses are present"},
	"results.risks":                 {"المخاطر المحتملة", "Potential Risks"},
	"results.risks.empty":           {"لا توجد مخاطر محتملة", "No potential risks identified"},
	"results.compliant":             {"البنود المتوافقة", "Compliant Clauses"},
	"results.compliant.empty":       {"لم يتم العثور على بنود متوافقة في العقد", "No compliant clauses found in the contract"},
	"results.recommendations":       {"التوصيات", "Recommendations"},
	"results.recommendations.empty": {"لا توجد توصيات إضافية، العقد في حالة جيدة", "No further recommendations, the contract is in good shape"},
	"results.reference":             {"المرجع: ", "Reference: "},
	"results.recommendation":        {"التوصية: ", "Recommendation: "},
	"results.severity":              {"الشدة: ", "Severity: "},
	"results.compliantBadge":        {"متوافق", "Compliant"},
	"results.overallRisk":           {"مستوى المخاطر العام", "Overall Risk"},

	// Contract types
	"contractType.employment":  {"عقد عمل", "Employment Contract"},
	"contractType.rental":      {"عقد إيجار", "Rental Contract"},
	"contractType.sales":       {"عقد بيع", "Sales Contract"},
	"contractType.partnership": {"عقد شراكة", "Partnership Contract"},

	// Severity / importance
	"risk.high":   {"عالية", "High"},
	"risk.medium": {"متوسطة", "Medium"},
	"risk.low":    {"منخفضة", "Low"},

	// Compliance bands
	"level.excellent": {"ممتاز", "Excellent"},
	"level.very_good": {"جيد جداً", "Very Good"},
	"level.good":      {"جيد", "Good"},
	"level.average":   {"متوسط", "Average"},
	"level.poor":      {"ضعيف", "Poor"},

	// Plans
	"plans.title":     {"اختر خطتك", "Choose Your Plan"},
	"plans.subtitle":  {"اختر الباقة المناسبة لك لتحصل على أفضل حماية لعقودك", "Select the appropriate plan to get the best protection for your contracts"},
	"plans.perMonth":  {"/ شهرياً", "/ month"},
	"plans.popular":   {"الأكثر شيوعاً", "Most Popular"},
	"plans.subscribe": {"اشترك الآن", "Subscribe Now"},

	// About
	"about.title":      {"عن نظام العقود الذكية السعودية", "About Saudi AI Contracts"},
	"about.what.title": {"ما هو نظام العقود الذكية السعودية؟", "What is Saudi AI Contracts?"},
	"about.what.body": {
		"نظام العقود الذكية السعودية هو منصة متخصصة تعتمد على تقنيات الذكاء الاصطناعي لتحليل العقود القانونية ومطابقتها مع الأنظمة واللوائح السعودية. يساعد النظام المحامين والشركات والأفراد على التأكد من امتثال عقودهم للقوانين السعودية وتحديد المخاطر القانونية المحتملة.",
		"Saudi AI Contracts is a specialized platform that uses artificial intelligence to analyze legal contracts against Saudi laws and regulations. It helps lawyers, companies and individuals confirm that their contracts comply with Saudi law and identify potential legal risks.",
	},
	"about.types.body": {
		"يدعم النظام أربعة أنواع رئيسية من العقود: عقود العمل، عقود الإيجار، عقود البيع، وعقود الشراكة. يقوم النظام بتحليل هذه العقود وفقًا للأنظمة واللوائح السعودية ذات الصلة، ويقدم تقارير مفصلة عن مدى الامتثال والمخاطر المحتملة والتوصيات لتحسين العقود.",
		"The system supports four main contract types: employment, rental, sales and partnership. Each is analyzed against the relevant Saudi regulations, with detailed reports on compliance, potential risks and recommendations for improvement.",
	},
	"about.how.title":  {"كيف يعمل النظام؟", "How does it work?"},
	"about.step1.title": {"رفع العقد", "Upload the contract"},
	"about.step1.body":  {"قم برفع العقد بتنسيق PDF أو DOCX أو TXT وتحديد نوع العقد", "Upload the contract as PDF, DOCX or TXT and choose its type"},
	"about.step2.title": {"تحليل ذكي", "Smart analysis"},
	"about.step2.body":  {"يقوم النظام بتحليل العقد ومقارنته مع الأنظمة واللوائح السعودية ذات الصلة باستخدام الذكاء الاصطناعي", "The contract is analyzed and compared with the relevant Saudi regulations using AI"},
	"about.step3.title": {"تقرير مفصل", "Detailed report"},
	"about.step3.body":  {"احصل على تقرير مفصل يوضح درجة الامتثال والمخاطر القانونية والبنود المفقودة والتوصيات لتحسين العقد", "Get a detailed report showing the compliance score, legal risks, missing clauses and recommendations"},
	"about.laws.title":  {"الأنظمة واللوائح السعودية المدعومة", "Supported Saudi Laws and Regulations"},

	// Future capabilities
	"capabilities.title":    {"إمكانيات التحديث المستقبلية", "Future Update Capabilities"},
	"capabilities.subtitle": {"تم تصميم النظام ليكون قابلاً للتحديث والتطوير بسهولة لتلبية احتياجاتك المستقبلية", "The system is designed to be easily updated and extended to meet your future needs"},

	// Feedback
	"feedback.title":              {"هل لديك ملاحظة أو مشكلة؟", "Have Feedback or Issues?"},
	"feedback.subtitle":           {"نحن نهتم بتجربتك! إذا واجهتك أي مشكلة أو لديك ملاحظة بخصوص الخدمة أو نتائج التحليل، يمكنك مراسلتنا مباشرة.", "We care about your experience! If you encounter any issues or have feedback about the service or analysis results, you can contact us directly."},
	"feedback.form":               {"أرسل ملاحظتك", "Send Your Feedback"},
	"feedback.name":               {"الاسم", "Name"},
	"feedback.namePlaceholder":    {"أدخل اسمك", "Enter your name"},
	"feedback.email":              {"البريد الإلكتروني", "Email"},
	"feedback.emailPlaceholder":   {"أدخل بريدك الإلكتروني", "Enter your email"},
	"feedback.message":            {"الرسالة", "Message"},
	"feedback.messagePlaceholder": {"اكتب ملاحظتك أو المشكلة التي واجهتها", "Describe your feedback or the issue you faced"},
	"feedback.submit":             {"إرسال", "Send"},
	"feedback.thanks":             {"شكراً لك! تم استلام ملاحظتك وسنتواصل معك قريباً.", "Thank you! We received your feedback and will get back to you soon."},
	"feedback.invalid":            {"يرجى تعبئة جميع الحقول ببريد إلكتروني صالح", "Please fill in all fields with a valid email address"},
	"feedback.supportEmail":       {"البريد الإلكتروني للدعم", "Support email"},
	"feedback.supportPhone":       {"رقم هاتف الدعم الفني", "Support phone"},
	"feedback.required":           {"هذا الحقل مطلوب", "This field is required"},
	"feedback.invalidEmail":       {"يرجى إدخال بريد إلكتروني صالح", "Please enter a valid email address"},
	"feedback.tooLong":            {"الرسالة طويلة جداً", "The message is too long"},

	// Footer
	"footer.rights": {"جميع الحقوق محفوظة", "All rights reserved"},

	// Generic
	"error.tooManyRequests": {"طلبات كثيرة جداً، يرجى المحاولة بعد قليل", "Too many requests, please try again shortly"},
}
