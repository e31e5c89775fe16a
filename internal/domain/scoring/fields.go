package scoring

import "regexp"

// Category is one field-of-work candidate and its evidence sources.
type Category struct {
	Name     string
	Titles   []*regexp.Regexp // explicit job titles
	Keywords []*regexp.Regexp // loose vocabulary, counted per occurrence
	Skills   []string         // skills that point to this field
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// DefaultFields returns the built-in categories. The order is significant:
// it decides ties.
func DefaultFields() []Category {
	return []Category{
		{
			Name:     "Frontend Developer",
			Titles:   compileAll(`front[\s\-]?end\s*developer`, `UI\s*developer`, `JavaScript\s*developer`, `React\s*developer`, `Angular\s*developer`, `Vue\s*developer`),
			Keywords: compileAll(`front[\s\-]?end`, `UI`, `React`, `Angular`, `Vue`, `HTML`, `CSS`, `JavaScript`, `web\s*developer`, `front[\s\-]?end\s*developer`, `UI\s*developer`, `client[\s\-]?side`, `responsive`, `web\s*design`),
			Skills:   []string{"HTML", "CSS", "JavaScript", "React", "Angular", "Vue", "TypeScript", "SASS", "LESS", "Bootstrap", "jQuery", "Responsive Design", "Web Design", "UI", "UX", "Webpack", "Babel"},
		},
		{
			Name:     "Backend Developer",
			Titles:   compileAll(`back[\s\-]?end\s*developer`, `server[\s\-]?side\s*developer`, `API\s*developer`, `Python\s*developer`, `Java\s*developer`, `PHP\s*developer`, `Ruby\s*developer`, `Node\.js\s*developer`),
			Keywords: compileAll(`back[\s\-]?end`, `server`, `API`, `database`, `Django`, `Flask`, `Express`, `Node\.js`, `back[\s\-]?end\s*developer`, `server[\s\-]?side`, `PHP`, `Ruby`, `Java\s*developer`, `Python\s*developer`, `SQL`, `NoSQL`),
			Skills:   []string{"Python", "Java", "C#", "PHP", "Ruby", "Node.js", "Express", "Django", "Flask", "Spring", "Laravel", "SQL", "MySQL", "PostgreSQL", "MongoDB", "API", "REST", "GraphQL", "Microservices"},
		},
		{
			Name:     "Full-Stack Developer",
			Titles:   compileAll(`full[\s\-]?stack\s*developer`, `full[\s\-]?stack\s*engineer`, `software\s*engineer`, `web\s*developer`),
			Keywords: compileAll(`full[\s\-]?stack`, `front[\s\-]?end.*back[\s\-]?end`, `back[\s\-]?end.*front[\s\-]?end`, `full[\s\-]?stack\s*developer`, `MERN`, `MEAN`, `end[\s\-]?to[\s\-]?end`, `client.*server`, `server.*client`),
			Skills:   []string{"JavaScript", "TypeScript", "Python", "Java", "React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "SQL", "NoSQL", "REST API", "GraphQL", "MERN", "MEAN", "Full Stack"},
		},
		{
			Name:     "DevOps Engineer",
			Titles:   compileAll(`DevOps\s*engineer`, `cloud\s*engineer`, `infrastructure\s*engineer`, `site\s*reliability\s*engineer`, `SRE`, `platform\s*engineer`),
			Keywords: compileAll(`DevOps`, `CI/CD`, `Docker`, `Kubernetes`, `AWS`, `Azure`, `cloud`, `infrastructure`, `deployment`, `automation`, `Jenkins`, `GitLab\s*CI`, `GitHub\s*Actions`, `Terraform`, `Ansible`, `configuration\s*management`),
			Skills:   []string{"Docker", "Kubernetes", "AWS", "Azure", "GCP", "CI/CD", "Jenkins", "GitLab CI", "GitHub Actions", "Terraform", "Ansible", "Puppet", "Chef", "Linux", "Shell Scripting", "Monitoring", "Logging", "Cloud"},
		},
		{
			Name:     "Data Scientist",
			Titles:   compileAll(`data\s*scientist`, `data\s*analyst`, `analytics\s*specialist`, `business\s*intelligence`, `BI\s*developer`, `data\s*engineer`),
			Keywords: compileAll(`data\s*scien`, `machine\s*learning`, `AI`, `analytics`, `statistics`, `Python`, `R`, `data\s*analysis`, `big\s*data`, `data\s*mining`, `data\s*visualization`, `predictive\s*modeling`, `statistical\s*analysis`, `pandas`, `numpy`),
			Skills:   []string{"Python", "R", "SQL", "Pandas", "NumPy", "SciPy", "Scikit-learn", "TensorFlow", "PyTorch", "Statistics", "Data Analysis", "Data Visualization", "Machine Learning", "Big Data", "Hadoop", "Spark", "Tableau", "Power BI"},
		},
		{
			Name:     "Machine Learning Engineer",
			Titles:   compileAll(`machine\s*learning\s*engineer`, `ML\s*engineer`, `AI\s*engineer`, `deep\s*learning\s*specialist`, `NLP\s*engineer`, `computer\s*vision\s*engineer`),
			Keywords: compileAll(`machine\s*learning`, `deep\s*learning`, `neural\s*network`, `TensorFlow`, `PyTorch`, `ML\s*engineer`, `AI\s*engineer`, `computer\s*vision`, `NLP`, `natural\s*language\s*processing`, `reinforcement\s*learning`, `supervised\s*learning`, `unsupervised\s*learning`),
			Skills:   []string{"Python", "TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Deep Learning", "Neural Networks", "NLP", "Computer Vision", "Reinforcement Learning", "MLOps", "Feature Engineering", "Model Deployment", "AI"},
		},
		{
			Name:     "UI/UX Designer",
			Titles:   compileAll(`UI\s*designer`, `UX\s*designer`, `UI/UX\s*designer`, `product\s*designer`, `interaction\s*designer`, `visual\s*designer`, `web\s*designer`),
			Keywords: compileAll(`UI`, `UX`, `design`, `user\s*experience`, `user\s*interface`, `Figma`, `Sketch`, `Adobe\s*XD`, `wireframe`, `prototype`, `usability`, `interaction\s*design`, `visual\s*design`, `user\s*research`, `user\s*testing`),
			Skills:   []string{"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator", "InVision", "Wireframing", "Prototyping", "User Research", "Usability Testing", "Interaction Design", "Visual Design", "UI", "UX", "Design Systems"},
		},
		{
			Name:     "Product Manager",
			Titles:   compileAll(`product\s*manager`, `product\s*owner`, `program\s*manager`, `project\s*manager`, `scrum\s*master`, `agile\s*coach`),
			Keywords: compileAll(`product\s*manag`, `product\s*owner`, `scrum`, `agile`, `roadmap`, `stakeholder`, `product\s*development`, `product\s*strategy`, `user\s*stories`, `backlog`, `sprint`, `market\s*research`, `customer\s*feedback`, `product\s*requirements`),
			Skills:   []string{"Agile", "Scrum", "Kanban", "Jira", "Confluence", "Product Strategy", "Roadmapping", "User Stories", "Market Research", "Competitive Analysis", "Stakeholder Management", "Product Development", "Product Launch"},
		},
		{
			Name:     "QA Engineer",
			Titles:   compileAll(`QA\s*engineer`, `test\s*engineer`, `quality\s*assurance\s*engineer`, `software\s*tester`, `test\s*automation\s*engineer`, `SDET`),
			Keywords: compileAll(`QA`, `quality\s*assurance`, `testing`, `test\s*automation`, `Selenium`, `QA\s*engineer`, `test\s*engineer`, `software\s*tester`, `manual\s*testing`, `automated\s*testing`, `test\s*cases`, `test\s*plans`, `regression\s*testing`, `functional\s*testing`, `performance\s*testing`),
			Skills:   []string{"Selenium", "Cypress", "Jest", "Mocha", "JUnit", "TestNG", "Manual Testing", "Automated Testing", "Test Plans", "Test Cases", "Bug Tracking", "JIRA", "QA", "Quality Assurance", "Regression Testing"},
		},
	}
}

// Level is one seniority candidate and the keywords that point to it.
type Level struct {
	Name     string
	Keywords []*regexp.Regexp
}

// DefaultLevels returns the built-in seniority levels, junior to senior.
func DefaultLevels() []Level {
	return []Level{
		{Name: LevelIntern, Keywords: compileAll(`intern`, `internship`, `trainee`, `student`, `apprentice`, `co-op`)},
		{Name: LevelEntry, Keywords: compileAll(`entry[\s\-]?level`, `junior`, `graduate`, `recent\s*graduate`, `fresher`, `beginner`, `novice`, `0-1\s*years?`)},
		{Name: LevelJunior, Keywords: compileAll(`junior`, `jr\.`, `associate`, `1-3\s*years?`)},
		{Name: LevelMid, Keywords: compileAll(`mid[\s\-]?level`, `intermediate`, `experienced`, `3-5\s*years?`, `4-6\s*years?`)},
		{Name: LevelSenior, Keywords: compileAll(`senior`, `sr\.`, `experienced`, `advanced`, `expert`, `6\+\s*years?`, `7-9\s*years?`)},
		{Name: LevelLead, Keywords: compileAll(`lead`, `principal`, `architect`, `team\s*lead`, `technical\s*lead`, `10\+\s*years?`)},
		{Name: LevelManager, Keywords: compileAll(`manager`, `director`, `head\s*of`, `chief`, `vp`, `executive`, `12\+\s*years?`)},
	}
}
