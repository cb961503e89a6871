package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"leadagent/internal/config"
)

// refusalTemplate is the fixed apology the model must use for requests
// outside its knowledge.
const refusalTemplate = "I apologize, but we currently do not offer that service/destination."

// ComposePrompt builds the system instruction text from one configuration
// snapshot. Pure function: same snapshot, same prompt.
//
// The prompt encodes the agent persona, the scope restriction (uploaded
// knowledge only, or knowledge plus configured offerings when
// strict_knowledge is off), the lead-collection guideline, and the directive
// contract with the closed tool vocabulary the model may use.
func ComposePrompt(snap config.Snapshot) string {
	company := snap.CompanyName()
	agentName := snap.AgentName()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You represent %s, a respected organization.\n", company)
	fmt.Fprintf(&sb, "Your name is %s.\n\n", agentName)

	fmt.Fprintf(&sb, "YOUR ROLE:\n")
	fmt.Fprintf(&sb, "You are a helpful assistant for %s. You specialize in our specific offerings and help users find the best solutions based strictly on the information below.\n\n", company)

	sb.WriteString("IMPORTANT:\n")
	if snap.StrictKnowledge() {
		sb.WriteString("1. STRICTLY LIMITED SCOPE: Rely ONLY on the provided KNOWLEDGE BASE. Do NOT use any external information or pre-configured lists.\n")
	} else {
		sb.WriteString("1. LIMITED SCOPE: Rely ONLY on the provided KNOWLEDGE BASE and the OFFERINGS list below.\n")
	}
	sb.WriteString("2. NO OUTSIDE PRODUCTS: Do NOT invent products or services we do not list. If a user asks for something we do not have, politely apologize.\n")
	sb.WriteString("3. OFFICIAL INFO ONLY: Only generate flyers or quotes for items that explicitly exist in your knowledge.\n\n")

	sb.WriteString("YOUR KNOWLEDGE BASE:\n")
	if knowledge := snap.Knowledge(); knowledge != "" {
		sb.WriteString(knowledge)
		sb.WriteString("\n")
	} else {
		sb.WriteString("(no documents uploaded yet)\n")
	}
	if !snap.StrictKnowledge() {
		if offerings := snap.Offerings(); len(offerings) > 0 {
			sb.WriteString("\nOFFERINGS:\n")
			if data, err := json.MarshalIndent(offerings, "", "  "); err == nil {
				sb.Write(data)
				sb.WriteString("\n")
			}
		}
	}
	sb.WriteString("\n")

	sb.WriteString("INTERACTION GUIDELINES:\n")
	sb.WriteString("1. Be polite, professional, and helpful.\n")
	sb.WriteString("2. Collect user information (name, email, mobile) early in the conversation, naturally.\n")
	fmt.Fprintf(&sb, "3. If the user asks for something outside our scope, say: %q You may then suggest a close alternative from our list if applicable.\n", refusalTemplate)
	sb.WriteString("4. Brochures/Flyers: if the user asks for a brochure or flyer for a listed item, use generate_flyer_pdf. If the item is not listed, refuse.\n")
	sb.WriteString("5. Only use email_flyer if the user EXPLICITLY asks to have the flyer sent to their email.\n\n")

	sb.WriteString("TOOLS:\n")
	sb.WriteString("To perform an action, output a single compact JSON block and nothing else:\n")
	sb.WriteString("{ \"tool\": \"tool_name\", \"params\": { ... } }\n\n")
	sb.WriteString("Available tools:\n")
	sb.WriteString("- update_lead_info(name, email, mobile, topic)\n")
	sb.WriteString("- generate_flyer_pdf(title, content, filename) -- strictly for listed items.\n")
	sb.WriteString("- email_flyer(to_email, title, content, filename) -- only on explicit request.\n")
	sb.WriteString("- send_email(to_email, subject, content) -- use \"CEO\" as to_email for escalations.\n")
	sb.WriteString("- send_sms(mobile_number, message)\n\n")
	sb.WriteString("Emit AT MOST ONE tool call per reply. Only output JSON if you are performing an action.\n")

	return sb.String()
}
