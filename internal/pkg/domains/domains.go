package domains

import "strings"

// AllowedDomains lists the institutional email domains accepted for student
// self-registration. Matching is a case-sensitive exact comparison against
// the part after "@".
var AllowedDomains = []string{
	// Universités & académies
	"etu.unistra.fr",
	"unistra.fr",
	"etu.sorbonne-universite.fr",
	"sorbonne-universite.fr",
	"etu.u-paris.fr",
	"u-paris.fr",
	"etu.univ-lyon1.fr",
	"univ-lyon1.fr",
	"etu.univ-lyon2.fr",
	"univ-lyon2.fr",
	"etu.univ-lyon3.fr",
	"univ-lyon3.fr",
	"etu.univ-amu.fr",
	"univ-amu.fr",
	"etu.u-bordeaux.fr",
	"u-bordeaux.fr",
	"etu.univ-lille.fr",
	"univ-lille.fr",
	"etu.univ-nantes.fr",
	"univ-nantes.fr",
	"etu.univ-rennes1.fr",
	"univ-rennes1.fr",
	"etu.univ-rennes2.fr",
	"univ-rennes2.fr",
	"etu.univ-toulouse.fr",
	"univ-toulouse.fr",
	"etu.univ-grenoble-alpes.fr",
	"univ-grenoble-alpes.fr",
	"etu.univ-cotedazur.fr",
	"univ-cotedazur.fr",
	"etu.univ-lorraine.fr",
	"univ-lorraine.fr",
	"etu.univ-montpellier.fr",
	"univ-montpellier.fr",
	"etu.unicaen.fr",
	"unicaen.fr",
	"etu.u-picardie.fr",
	"u-picardie.fr",
	"etu.univ-poitiers.fr",
	"univ-poitiers.fr",
	"etu.univ-tours.fr",
	"univ-tours.fr",
	"etu.univ-orleans.fr",
	"univ-orleans.fr",

	// Écoles tech / informatique
	"epitech.eu",
	"student.42.fr",
	"42.fr",
	"student.42lyon.fr",
	"student.42nice.fr",
	"supinfo.com",
	"epita.fr",
	"esiea.fr",
	"efrei.fr",
	"ece.fr",
	"etna.io",

	// Grandes écoles d'ingénieurs
	"polytechnique.edu",
	"centralesupelec.fr",
	"mines-paristech.fr",
	"telecom-paris.fr",
	"enpc.fr",
	"insa-lyon.fr",
	"insa-toulouse.fr",
	"insa-rennes.fr",
	"insa-rouen.fr",
	"insa-strasbourg.fr",
	"utbm.fr",
	"utc.fr",
	"utt.fr",
	"ens.fr",
	"ens-lyon.fr",
	"ens-paris-saclay.fr",
	"arts-et-metiers.fr",

	// Grandes écoles de commerce
	"hec.edu",
	"essec.edu",
	"edhec.com",
	"em-lyon.com",
	"escpeurope.eu",
	"audencia.com",
	"grenoble-em.com",
	"neoma-bs.fr",
	"kedgebs.com",
	"skema.edu",
	"tbs-education.fr",

	// Sciences Po
	"sciencespo.fr",
	"sciencespo-lille.eu",
	"sciencespo-lyon.fr",
	"sciencespo-bordeaux.fr",
}

var allowed = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedDomains))
	for _, d := range AllowedDomains {
		m[d] = struct{}{}
	}
	return m
}()

// EmailAllowed reports whether the email's domain is on the allow-list.
func EmailAllowed(email string) bool {
	_, ok := allowed[Domain(email)]
	return ok
}

// Domain extracts the part after "@", or "" when the address is malformed.
func Domain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}
