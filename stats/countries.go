package stats

// Countries is the volunteer estimate per ISO 3166-1 alpha-2 code shown on
// the world map.
var Countries = []Country{
	{Code: "US", Name: "ABD", Volunteers: 15200000, Level: LevelHigh},
	{Code: "CN", Name: "Çin", Volunteers: 8400000, Level: LevelHigh},
	{Code: "IN", Name: "Hindistan", Volunteers: 6800000, Level: LevelHigh},
	{Code: "BR", Name: "Brezilya", Volunteers: 5700000, Level: LevelHigh},
	{Code: "RU", Name: "Rusya", Volunteers: 4200000, Level: LevelHigh},
	{Code: "PK", Name: "Pakistan", Volunteers: 2800000, Level: LevelHigh},
	{Code: "JP", Name: "Japonya", Volunteers: 2600000, Level: LevelMediumHigh},
	{Code: "CA", Name: "Kanada", Volunteers: 2400000, Level: LevelMediumHigh},
	{Code: "GB", Name: "İngiltere", Volunteers: 2100000, Level: LevelMediumHigh},
	{Code: "AU", Name: "Avustralya", Volunteers: 1900000, Level: LevelMediumHigh},
	{Code: "DE", Name: "Almanya", Volunteers: 1800000, Level: LevelMediumHigh},
	{Code: "FR", Name: "Fransa", Volunteers: 1600000, Level: LevelMediumHigh},
	{Code: "MX", Name: "Meksika", Volunteers: 1300000, Level: LevelMediumHigh},
	{Code: "ES", Name: "İspanya", Volunteers: 950000, Level: LevelMediumHigh},
	{Code: "IT", Name: "İtalya", Volunteers: 880000, Level: LevelMediumHigh},
	{Code: "KR", Name: "G. Kore", Volunteers: 820000, Level: LevelMediumHigh},
	{Code: "CO", Name: "Kolombiya", Volunteers: 750000, Level: LevelMediumHigh},
	{Code: "IR", Name: "İran", Volunteers: 690000, Level: LevelMediumHigh},
	{Code: "PE", Name: "Peru", Volunteers: 580000, Level: LevelMediumHigh},
	{Code: "ID", Name: "Endonezya", Volunteers: 680000, Level: LevelMedium},
	{Code: "TR", Name: "Türkiye", Volunteers: 156789, Level: LevelMedium},
	{Code: "PH", Name: "Filipinler", Volunteers: 490000, Level: LevelMedium},
	{Code: "AR", Name: "Arjantin", Volunteers: 450000, Level: LevelMedium},
	{Code: "NG", Name: "Nijerya", Volunteers: 420000, Level: LevelMedium},
	{Code: "VN", Name: "Vietnam", Volunteers: 410000, Level: LevelMedium},
	{Code: "ZA", Name: "G. Afrika", Volunteers: 380000, Level: LevelMedium},
	{Code: "TH", Name: "Tayland", Volunteers: 340000, Level: LevelMedium},
	{Code: "EG", Name: "Mısır", Volunteers: 310000, Level: LevelMedium},
	{Code: "PL", Name: "Polonya", Volunteers: 280000, Level: LevelMedium},
	{Code: "MY", Name: "Malezya", Volunteers: 260000, Level: LevelMedium},
	{Code: "CL", Name: "Şili", Volunteers: 240000, Level: LevelMedium},
	{Code: "NL", Name: "Hollanda", Volunteers: 220000, Level: LevelMedium},
	{Code: "SA", Name: "S. Arabistan", Volunteers: 195000, Level: LevelMedium},
	{Code: "BD", Name: "Bangladeş", Volunteers: 185000, Level: LevelMedium},
	{Code: "ET", Name: "Etiyopya", Volunteers: 165000, Level: LevelMedium},
	{Code: "UA", Name: "Ukrayna", Volunteers: 155000, Level: LevelMedium},
	{Code: "KE", Name: "Kenya", Volunteers: 145000, Level: LevelMedium},
	{Code: "DZ", Name: "Cezayir", Volunteers: 135000, Level: LevelMedium},
	{Code: "MA", Name: "Fas", Volunteers: 125000, Level: LevelMedium},
	{Code: "VE", Name: "Venezuela", Volunteers: 115000, Level: LevelMedium},
	{Code: "RO", Name: "Romanya", Volunteers: 105000, Level: LevelMedium},
	{Code: "GH", Name: "Gana", Volunteers: 95000, Level: LevelLowMedium},
	{Code: "UZ", Name: "Özbekistan", Volunteers: 88000, Level: LevelLowMedium},
	{Code: "IQ", Name: "Irak", Volunteers: 82000, Level: LevelLowMedium},
	{Code: "AF", Name: "Afganistan", Volunteers: 76000, Level: LevelLowMedium},
	{Code: "TZ", Name: "Tanzanya", Volunteers: 71000, Level: LevelLowMedium},
	{Code: "UG", Name: "Uganda", Volunteers: 68000, Level: LevelLowMedium},
	{Code: "SE", Name: "İsveç", Volunteers: 65000, Level: LevelLowMedium},
	{Code: "BE", Name: "Belçika", Volunteers: 62000, Level: LevelLowMedium},
	{Code: "CZ", Name: "Çekya", Volunteers: 58000, Level: LevelLowMedium},
	{Code: "PT", Name: "Portekiz", Volunteers: 55000, Level: LevelLowMedium},
	{Code: "GR", Name: "Yunanistan", Volunteers: 52000, Level: LevelLowMedium},
	{Code: "HU", Name: "Macaristan", Volunteers: 48000, Level: LevelLowMedium},
	{Code: "AT", Name: "Avusturya", Volunteers: 45000, Level: LevelLowMedium},
	{Code: "CH", Name: "İsviçre", Volunteers: 43000, Level: LevelLowMedium},
	{Code: "IL", Name: "İsrail", Volunteers: 41000, Level: LevelLowMedium},
	{Code: "BG", Name: "Bulgaristan", Volunteers: 38000, Level: LevelLowMedium},
	{Code: "RS", Name: "Sırbistan", Volunteers: 35000, Level: LevelLowMedium},
	{Code: "NZ", Name: "Yeni Zelanda", Volunteers: 33000, Level: LevelLowMedium},
	{Code: "NO", Name: "Norveç", Volunteers: 31000, Level: LevelLowMedium},
	{Code: "DK", Name: "Danimarka", Volunteers: 29000, Level: LevelLowMedium},
	{Code: "FI", Name: "Finlandiya", Volunteers: 27000, Level: LevelLowMedium},
	{Code: "SK", Name: "Slovakya", Volunteers: 25000, Level: LevelLowMedium},
	{Code: "HR", Name: "Hırvatistan", Volunteers: 23000, Level: LevelLowMedium},
	{Code: "AE", Name: "BAE", Volunteers: 21000, Level: LevelLowMedium},
	{Code: "SG", Name: "Singapur", Volunteers: 19000, Level: LevelLowMedium},
	{Code: "LB", Name: "Lübnan", Volunteers: 17000, Level: LevelLowMedium},
	{Code: "JO", Name: "Ürdün", Volunteers: 15000, Level: LevelLowMedium},
	{Code: "SY", Name: "Suriye", Volunteers: 13000, Level: LevelLowMedium},
	{Code: "KZ", Name: "Kazakistan", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "LY", Name: "Libya", Volunteers: 9500, Level: LevelLowMedium},
	{Code: "SD", Name: "Sudan", Volunteers: 8700, Level: LevelLowMedium},
	{Code: "TN", Name: "Tunus", Volunteers: 8200, Level: LevelLowMedium},
	{Code: "YE", Name: "Yemen", Volunteers: 7800, Level: LevelLowMedium},
	{Code: "LK", Name: "Sri Lanka", Volunteers: 7400, Level: LevelLowMedium},
	{Code: "MM", Name: "Myanmar", Volunteers: 6900, Level: LevelLowMedium},
	{Code: "NP", Name: "Nepal", Volunteers: 6500, Level: LevelLowMedium},
	{Code: "CM", Name: "Kamerun", Volunteers: 6100, Level: LevelLowMedium},
	{Code: "CI", Name: "Fildişi S.", Volunteers: 5800, Level: LevelLowMedium},
	{Code: "MG", Name: "Madagaskar", Volunteers: 5400, Level: LevelLowMedium},
	{Code: "ZM", Name: "Zambiya", Volunteers: 5100, Level: LevelLowMedium},
	{Code: "SN", Name: "Senegal", Volunteers: 4800, Level: LevelLowMedium},
	{Code: "ZW", Name: "Zimbabve", Volunteers: 4500, Level: LevelLowMedium},
	{Code: "RW", Name: "Ruanda", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "BJ", Name: "Benin", Volunteers: 3900, Level: LevelLowMedium},
	{Code: "BF", Name: "Burkina Faso", Volunteers: 3600, Level: LevelLowMedium},
	{Code: "ML", Name: "Mali", Volunteers: 3300, Level: LevelLowMedium},
	{Code: "MW", Name: "Malavi", Volunteers: 3000, Level: LevelLowMedium},
	{Code: "KH", Name: "Kamboçya", Volunteers: 2800, Level: LevelLowMedium},
	{Code: "LA", Name: "Laos", Volunteers: 2500, Level: LevelLowMedium},
	{Code: "MN", Name: "Moğolistan", Volunteers: 2200, Level: LevelLowMedium},
	{Code: "BT", Name: "Butan", Volunteers: 1900, Level: LevelLowMedium},
	{Code: "BI", Name: "Burundi", Volunteers: 1600, Level: LevelLowMedium},
	{Code: "GF", Name: "Fransız Guyanası", Volunteers: 1200, Level: LevelLowMedium},
	{Code: "AW", Name: "Aruba", Volunteers: 800, Level: LevelLowMedium},
	{Code: "AI", Name: "Anguilla", Volunteers: 300, Level: LevelLowMedium},
	{Code: "AS", Name: "Amerikan Samoası", Volunteers: 900, Level: LevelLowMedium},
	{Code: "AG", Name: "Antigua ve Barbuda", Volunteers: 1100, Level: LevelLowMedium},
	{Code: "BH", Name: "Bahreyn", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "BS", Name: "Bahamalar", Volunteers: 3800, Level: LevelLowMedium},
	{Code: "BL", Name: "Saint-Barthélemy", Volunteers: 200, Level: LevelLowMedium},
	{Code: "BM", Name: "Bermuda", Volunteers: 1500, Level: LevelLowMedium},
	{Code: "BB", Name: "Barbados", Volunteers: 2100, Level: LevelLowMedium},
	{Code: "KM", Name: "Komorlar", Volunteers: 1700, Level: LevelLowMedium},
	{Code: "CV", Name: "Yeşil Burun Adaları", Volunteers: 2400, Level: LevelLowMedium},
	{Code: "CW", Name: "Curaçao", Volunteers: 1300, Level: LevelLowMedium},
	{Code: "KY", Name: "Cayman Adaları", Volunteers: 1100, Level: LevelLowMedium},
	{Code: "CY", Name: "Kıbrıs", Volunteers: 8500, Level: LevelLowMedium},
	{Code: "DM", Name: "Dominika", Volunteers: 900, Level: LevelLowMedium},
	{Code: "FK", Name: "Falkland Adaları", Volunteers: 500, Level: LevelLowMedium},
	{Code: "FO", Name: "Faroe Adaları", Volunteers: 800, Level: LevelLowMedium},
	{Code: "FM", Name: "Mikronezya", Volunteers: 1400, Level: LevelLowMedium},
	{Code: "GD", Name: "Grenada", Volunteers: 1200, Level: LevelLowMedium},
	{Code: "GU", Name: "Guam", Volunteers: 1800, Level: LevelLowMedium},
	{Code: "KN", Name: "Saint Kitts ve Nevis", Volunteers: 950, Level: LevelLowMedium},
	{Code: "LC", Name: "Saint Lucia", Volunteers: 1700, Level: LevelLowMedium},
	{Code: "MF", Name: "Saint-Martin", Volunteers: 650, Level: LevelLowMedium},
	{Code: "MV", Name: "Maldivler", Volunteers: 3100, Level: LevelLowMedium},
	{Code: "MH", Name: "Marshall Adaları", Volunteers: 850, Level: LevelLowMedium},
	{Code: "MT", Name: "Malta", Volunteers: 7200, Level: LevelLowMedium},
	{Code: "MP", Name: "Kuzey Mariana Adaları", Volunteers: 950, Level: LevelLowMedium},
	{Code: "MS", Name: "Montserrat", Volunteers: 400, Level: LevelLowMedium},
	{Code: "MU", Name: "Mauritius", Volunteers: 8900, Level: LevelLowMedium},
	{Code: "NC", Name: "Yeni Kaledonya", Volunteers: 2700, Level: LevelLowMedium},
	{Code: "NR", Name: "Nauru", Volunteers: 600, Level: LevelLowMedium},
	{Code: "PW", Name: "Palau", Volunteers: 900, Level: LevelLowMedium},
	{Code: "PR", Name: "Porto Riko", Volunteers: 24000, Level: LevelLowMedium},
	{Code: "PF", Name: "Fransız Polinezyası", Volunteers: 2900, Level: LevelLowMedium},
	{Code: "SB", Name: "Solomon Adaları", Volunteers: 3400, Level: LevelLowMedium},
	{Code: "ST", Name: "São Tomé ve Príncipe", Volunteers: 1100, Level: LevelLowMedium},
	{Code: "SX", Name: "Sint Maarten", Volunteers: 750, Level: LevelLowMedium},
	{Code: "SC", Name: "Seyşeller", Volunteers: 2200, Level: LevelLowMedium},
	{Code: "TC", Name: "Turks ve Caicos Adaları", Volunteers: 850, Level: LevelLowMedium},
	{Code: "TO", Name: "Tonga", Volunteers: 1800, Level: LevelLowMedium},
	{Code: "TT", Name: "Trinidad ve Tobago", Volunteers: 9500, Level: LevelLowMedium},
	{Code: "TV", Name: "Tuvalu", Volunteers: 650, Level: LevelLowMedium},
	{Code: "VC", Name: "Saint Vincent ve Grenadinler", Volunteers: 1400, Level: LevelLowMedium},
	{Code: "VG", Name: "İngiliz Virgin Adaları", Volunteers: 700, Level: LevelLowMedium},
	{Code: "VI", Name: "ABD Virgin Adaları", Volunteers: 1200, Level: LevelLowMedium},
	{Code: "VU", Name: "Vanuatu", Volunteers: 2100, Level: LevelLowMedium},
	{Code: "WS", Name: "Samoa", Volunteers: 1900, Level: LevelLowMedium},
	{Code: "YT", Name: "Mayotte", Volunteers: 1500, Level: LevelLowMedium},
	{Code: "RE", Name: "Reunion", Volunteers: 3200, Level: LevelLowMedium},
	{Code: "GP", Name: "Guadeloupe", Volunteers: 2800, Level: LevelLowMedium},
	{Code: "FJ", Name: "Fiji", Volunteers: 4100, Level: LevelLowMedium},
	{Code: "IC", Name: "Kanarya Adaları", Volunteers: 3500, Level: LevelLowMedium},
	{Code: "MQ", Name: "Martinique", Volunteers: 2600, Level: LevelLowMedium},
	{Code: "AO", Name: "Angola", Volunteers: 65000, Level: LevelLowMedium},
	{Code: "AZ", Name: "Azerbaycan", Volunteers: 42000, Level: LevelLowMedium},
	{Code: "BY", Name: "Belarus", Volunteers: 38000, Level: LevelLowMedium},
	{Code: "BO", Name: "Bolivya", Volunteers: 42000, Level: LevelLowMedium},
	{Code: "BA", Name: "Bosna-Hersek", Volunteers: 15000, Level: LevelLowMedium},
	{Code: "BW", Name: "Botsvana", Volunteers: 8200, Level: LevelLowMedium},
	{Code: "BN", Name: "Brunei", Volunteers: 3100, Level: LevelLowMedium},
	{Code: "CD", Name: "Kongo Demokratik C.", Volunteers: 48000, Level: LevelLowMedium},
	{Code: "CG", Name: "Kongo Cumhuriyeti", Volunteers: 19000, Level: LevelLowMedium},
	{Code: "CR", Name: "Kosta Rika", Volunteers: 18000, Level: LevelLowMedium},
	{Code: "CU", Name: "Küba", Volunteers: 35000, Level: LevelLowMedium},
	{Code: "DO", Name: "Dominik Cumhuriyeti", Volunteers: 26000, Level: LevelLowMedium},
	{Code: "EC", Name: "Ekvador", Volunteers: 48000, Level: LevelLowMedium},
	{Code: "SV", Name: "El Salvador", Volunteers: 22000, Level: LevelLowMedium},
	{Code: "GQ", Name: "Ekvator Ginesi", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "ER", Name: "Eritre", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "EE", Name: "Estonya", Volunteers: 6800, Level: LevelLowMedium},
	{Code: "GA", Name: "Gabon", Volunteers: 7500, Level: LevelLowMedium},
	{Code: "GM", Name: "Gambiya", Volunteers: 4800, Level: LevelLowMedium},
	{Code: "GE", Name: "Gürcistan", Volunteers: 16000, Level: LevelLowMedium},
	{Code: "GN", Name: "Gine", Volunteers: 21000, Level: LevelLowMedium},
	{Code: "GW", Name: "Gine-Bissau", Volunteers: 3900, Level: LevelLowMedium},
	{Code: "GY", Name: "Guyana", Volunteers: 5400, Level: LevelLowMedium},
	{Code: "HT", Name: "Haiti", Volunteers: 24000, Level: LevelLowMedium},
	{Code: "HN", Name: "Honduras", Volunteers: 19000, Level: LevelLowMedium},
	{Code: "IS", Name: "İzlanda", Volunteers: 4100, Level: LevelLowMedium},
	{Code: "IE", Name: "İrlanda", Volunteers: 24000, Level: LevelLowMedium},
	{Code: "JM", Name: "Jamaika", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "KW", Name: "Kuveyt", Volunteers: 12000, Level: LevelLowMedium},
	{Code: "KG", Name: "Kırgızistan", Volunteers: 8700, Level: LevelLowMedium},
	{Code: "LV", Name: "Letonya", Volunteers: 9200, Level: LevelLowMedium},
	{Code: "LR", Name: "Liberya", Volunteers: 12000, Level: LevelLowMedium},
	{Code: "LT", Name: "Litvanya", Volunteers: 13000, Level: LevelLowMedium},
	{Code: "LU", Name: "Lüksemburg", Volunteers: 3800, Level: LevelLowMedium},
	{Code: "MK", Name: "Kuzey Makedonya", Volunteers: 9500, Level: LevelLowMedium},
	{Code: "MR", Name: "Moritanya", Volunteers: 7800, Level: LevelLowMedium},
	{Code: "MZ", Name: "Mozambik", Volunteers: 16000, Level: LevelLowMedium},
	{Code: "NA", Name: "Namibya", Volunteers: 8900, Level: LevelLowMedium},
	{Code: "NE", Name: "Nijer", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "NI", Name: "Nikaragua", Volunteers: 14000, Level: LevelLowMedium},
	{Code: "KP", Name: "Kuzey Kore", Volunteers: 12000, Level: LevelLowMedium},
	{Code: "OM", Name: "Umman", Volunteers: 14000, Level: LevelLowMedium},
	{Code: "PA", Name: "Panama", Volunteers: 15000, Level: LevelLowMedium},
	{Code: "PG", Name: "Papua Yeni Gine", Volunteers: 19000, Level: LevelLowMedium},
	{Code: "PY", Name: "Paraguay", Volunteers: 18000, Level: LevelLowMedium},
	{Code: "QA", Name: "Katar", Volunteers: 8500, Level: LevelLowMedium},
	{Code: "MD", Name: "Moldova", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "SI", Name: "Slovenya", Volunteers: 10000, Level: LevelLowMedium},
	{Code: "SO", Name: "Somali", Volunteers: 9200, Level: LevelLowMedium},
	{Code: "SS", Name: "Güney Sudan", Volunteers: 7100, Level: LevelLowMedium},
	{Code: "SR", Name: "Surinam", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "SZ", Name: "Esvatini", Volunteers: 3800, Level: LevelLowMedium},
	{Code: "TJ", Name: "Tacikistan", Volunteers: 7400, Level: LevelLowMedium},
	{Code: "TL", Name: "Doğu Timor", Volunteers: 5100, Level: LevelLowMedium},
	{Code: "TG", Name: "Togo", Volunteers: 6800, Level: LevelLowMedium},
	{Code: "TM", Name: "Türkmenistan", Volunteers: 8200, Level: LevelLowMedium},
	{Code: "UY", Name: "Uruguay", Volunteers: 16000, Level: LevelLowMedium},
	{Code: "AM", Name: "Ermenistan", Volunteers: 9800, Level: LevelLowMedium},
	{Code: "AL", Name: "Arnavutluk", Volunteers: 11000, Level: LevelLowMedium},
	{Code: "AD", Name: "Andorra", Volunteers: 800, Level: LevelLowMedium},
	{Code: "LI", Name: "Liechtenstein", Volunteers: 450, Level: LevelLowMedium},
	{Code: "MC", Name: "Monako", Volunteers: 550, Level: LevelLowMedium},
	{Code: "SM", Name: "San Marino", Volunteers: 420, Level: LevelLowMedium},
	{Code: "VA", Name: "Vatikan", Volunteers: 150, Level: LevelLowMedium},
	{Code: "ME", Name: "Karadağ", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "XK", Name: "Kosova", Volunteers: 6800, Level: LevelLowMedium},
	{Code: "PS", Name: "Filistin", Volunteers: 12000, Level: LevelLowMedium},
	{Code: "EH", Name: "Batı Sahra", Volunteers: 2100, Level: LevelLowMedium},
	{Code: "DJ", Name: "Cibuti", Volunteers: 2900, Level: LevelLowMedium},
	{Code: "SL", Name: "Sierra Leone", Volunteers: 8700, Level: LevelLowMedium},
	{Code: "LS", Name: "Lesotho", Volunteers: 4200, Level: LevelLowMedium},
	{Code: "BZ", Name: "Belize", Volunteers: 3500, Level: LevelLowMedium},
	{Code: "GT", Name: "Guatemala", Volunteers: 28000, Level: LevelLowMedium},
}
