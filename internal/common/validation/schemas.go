package validation

// Status values accepted per entity.
var (
	CandidateStatuses  = []string{"active", "inactive", "placed"}
	ClientStatuses     = []string{"active", "inactive"}
	JobOrderStatuses   = []string{"open", "closed", "filled"}
	AssignmentStatuses = []string{"applied", "interviewing", "offered", "placed", "rejected"}
)

const phonePattern = `^[+]?[0-9\s\-()]+$`

func float(f float64) *float64 {
	return &f
}

// maxID is the largest integer a JSON number carries exactly.
const maxID = 1<<53 - 1

func id(name string, required bool) Property {
	return Property{Name: name, Kind: Integer, Required: required, Min: float(1), Max: float(maxID)}
}

func personName(name string, required bool) Property {
	return Property{Name: name, Kind: String, Required: required, Trim: true, MinLength: 2, MaxLength: 100}
}

func email(name string, required, allowEmpty bool) Property {
	return Property{Name: name, Kind: String, Required: required, Trim: true, AllowEmpty: allowEmpty, MaxLength: 255, Format: "email"}
}

func phone(name string) Property {
	return Property{Name: name, Kind: String, AllowEmpty: true, MinLength: 10, MaxLength: 20, Pattern: phonePattern}
}

func longText(name string) Property {
	return Property{Name: name, Kind: String, AllowEmpty: true, MaxLength: 2000}
}

func status(name string, values []string, def interface{}, required bool) Property {
	return Property{Name: name, Kind: String, Required: required, Enum: values, Default: def}
}

func experience(name string) Property {
	return Property{Name: name, Kind: Number, Min: float(0), Max: float(50), Precision: 1}
}

func pagination() []Property {
	return []Property{
		{Name: "page", Kind: Integer, Min: float(1), Default: int64(1)},
		{Name: "limit", Kind: Integer, Min: float(1), Max: float(100), Default: int64(10)},
	}
}

// IDParam validates a numeric :id path segment.
var IDParam = NewSchema("id_param", 0, id("id", true))

var CandidateCreate = NewSchema("candidate_create", 0,
	personName("first_name", true),
	personName("last_name", true),
	email("email", true, false),
	phone("phone"),
	longText("skills"),
	experience("experience_years"),
	Property{Name: "resume_url", Kind: String, AllowEmpty: true, MaxLength: 500, Format: "uri"},
	status("status", CandidateStatuses, "active", false),
)

var CandidateUpdate = NewSchema("candidate_update", 1,
	personName("first_name", false),
	personName("last_name", false),
	email("email", false, false),
	phone("phone"),
	longText("skills"),
	experience("experience_years"),
	Property{Name: "resume_url", Kind: String, AllowEmpty: true, MaxLength: 500, Format: "uri"},
	status("status", CandidateStatuses, nil, false),
)

var CandidateSearch = NewSchema("candidate_search", 0, append([]Property{
	{Name: "skills", Kind: String, Trim: true, MinLength: 1, MaxLength: 255},
	status("status", CandidateStatuses, nil, false),
	{Name: "experience_min", Kind: Number, Min: float(0), Max: float(50)},
	{Name: "experience_max", Kind: Number, Min: float(0), Max: float(50)},
	{Name: "search", Kind: String, Trim: true, AllowEmpty: true, MaxLength: 255},
}, pagination()...)...)

// CandidateSkillSearch leaves skills optional so the handler can answer with its
// own "Skills parameter is required" message.
var CandidateSkillSearch = NewSchema("candidate_skill_search", 0,
	Property{Name: "skills", Kind: String, Trim: true, AllowEmpty: true, MaxLength: 255},
	Property{Name: "min_experience", Kind: Number, Min: float(0), Max: float(50), Default: float64(0)},
	Property{Name: "max_experience", Kind: Number, Min: float(0), Max: float(50), Default: float64(50)},
)

var CandidateBulkStatus = NewSchema("candidate_bulk_status", 0,
	Property{Name: "candidate_ids", Kind: Array, Required: true, MinItems: 1, Items: &Property{Name: "candidate_ids", Kind: Integer, Required: true, Min: float(1), Max: float(maxID)}},
	status("status", CandidateStatuses, nil, true),
)

var ClientCreate = NewSchema("client_create", 0,
	Property{Name: "company_name", Kind: String, Required: true, Trim: true, MinLength: 2, MaxLength: 255},
	Property{Name: "contact_person", Kind: String, Trim: true, AllowEmpty: true, MinLength: 2, MaxLength: 100},
	email("email", false, true),
	phone("phone"),
	longText("address"),
	status("status", ClientStatuses, "active", false),
)

var ClientUpdate = NewSchema("client_update", 1,
	Property{Name: "company_name", Kind: String, Trim: true, MinLength: 2, MaxLength: 255},
	Property{Name: "contact_person", Kind: String, Trim: true, AllowEmpty: true, MinLength: 2, MaxLength: 100},
	email("email", false, true),
	phone("phone"),
	longText("address"),
	status("status", ClientStatuses, nil, false),
)

var JobOrderSearch = NewSchema("job_order_search", 0,
	status("status", JobOrderStatuses, nil, false),
	id("client_id", false),
)

var JobOrderCreate = NewSchema("job_order_create", 0,
	Property{Name: "title", Kind: String, Required: true, Trim: true, MinLength: 2, MaxLength: 255},
	longText("description"),
	longText("required_skills"),
	experience("experience_required"),
	id("client_id", true),
	Property{Name: "salary_range", Kind: String, AllowEmpty: true, MaxLength: 100},
	Property{Name: "location", Kind: String, AllowEmpty: true, MaxLength: 255},
	status("status", JobOrderStatuses, "open", false),
)

// JobOrderUpdate replaces every column at once: all keys must be sent, and the
// optional columns accept null.
var JobOrderUpdate = NewSchema("job_order_update", 0,
	Property{Name: "title", Kind: String, Required: true, Trim: true, MinLength: 2, MaxLength: 255},
	Property{Name: "description", Kind: String, Required: true, AllowEmpty: true, MaxLength: 2000},
	Property{Name: "required_skills", Kind: String, Required: true, AllowEmpty: true, MaxLength: 2000},
	Property{Name: "experience_required", Kind: Number, Required: true, AllowEmpty: true, Min: float(0), Max: float(50), Precision: 1},
	status("status", JobOrderStatuses, nil, true),
	Property{Name: "salary_range", Kind: String, Required: true, AllowEmpty: true, MaxLength: 100},
	Property{Name: "location", Kind: String, Required: true, AllowEmpty: true, MaxLength: 255},
)

var AssignmentSearch = NewSchema("assignment_search", 0,
	status("status", AssignmentStatuses, nil, false),
)

var AssignmentCreate = NewSchema("assignment_create", 0,
	id("candidate_id", true),
	id("job_order_id", true),
	status("status", AssignmentStatuses, "applied", false),
	Property{Name: "notes", Kind: String, AllowEmpty: true, MaxLength: 1000},
	Property{Name: "assigned_date", Kind: Date, NotFuture: true},
)

// AssignmentUpdate requires status without enumerating it; unknown values are
// rejected by the assignment controller with "Invalid status".
var AssignmentUpdate = NewSchema("assignment_update", 0,
	Property{Name: "status", Kind: String, Required: true},
	Property{Name: "notes", Kind: String, AllowEmpty: true, MaxLength: 1000},
	Property{Name: "start_date", Kind: Date},
	Property{Name: "end_date", Kind: Date, NotBefore: "start_date"},
)
